package main

// @title SalesPipe CRM API
// @version 1.0
// @description Multi-user sales lead CRM backend: leads, activities, dashboards and realtime updates.

// @contact.name API Support
// @contact.email support@salespipe.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/salespipe/config"
	_ "github.com/jordanlanch/salespipe/docs"
	custommw "github.com/jordanlanch/salespipe/pkg/api/middleware"
	"github.com/jordanlanch/salespipe/pkg/container"
	custommiddleware "github.com/jordanlanch/salespipe/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// All services and handlers live in the container
	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}
	defer c.Close()

	// Run the websocket hub
	go c.Hub.Run()

	// Background jobs
	if err := c.Cron.SetupJobs(); err != nil {
		log.Fatalf("❌ Failed to setup cron jobs: %v", err)
	}
	c.Cron.Start()
	log.Printf("✅ Cron jobs started")

	e := echo.New()
	e.HideBanner = true

	// Rate limiters
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter := custommiddleware.NewRateLimiter(5, 2) // stricter on login to slow brute force

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(ec echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", ec.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(c.Metrics.Middleware())
	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.CORSAllowedOrigins)))
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.DefaultSecurityHeadersConfig()))
	e.Use(middleware.Gzip())
	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Public endpoints
	e.GET("/", func(ec echo.Context) error {
		return ec.JSON(http.StatusOK, map[string]any{
			"name":        "SalesPipe CRM API",
			"version":     "1.0.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(ec echo.Context) error {
		ctx, cancel := context.WithTimeout(ec.Request().Context(), 2*time.Second)
		defer cancel()

		if err := c.DB.Ping(ctx); err != nil {
			return ec.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":   "unhealthy",
				"database": "down",
			})
		}

		return ec.JSON(http.StatusOK, map[string]any{
			"status":   "healthy",
			"database": "up",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1
	v1 := e.Group("/api/v1")

	jwtAuth := custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, c.TokenBlacklist, c.DB.Ent)

	// Authentication
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", c.AuthHandler.Register, authRateLimiter.RateLimitMiddleware())
		authRoutes.POST("/login", c.AuthHandler.Login, authRateLimiter.RateLimitMiddleware())
		authRoutes.GET("/me", c.AuthHandler.Me, jwtAuth)
		authRoutes.POST("/logout", c.AuthHandler.Logout, jwtAuth)
	}

	// Websocket endpoint authenticates its own token (query param or header)
	v1.GET("/ws", c.RealtimeHandler.Serve)

	// Protected routes
	protected := v1.Group("")
	protected.Use(jwtAuth)
	{
		leadsGroup := protected.Group("/leads")
		{
			leadsGroup.GET("", c.LeadHandler.List)
			leadsGroup.POST("", c.LeadHandler.Create)
			leadsGroup.GET("/export", c.ExportHandler.LeadsExcel)
			leadsGroup.GET("/export/csv", c.ExportHandler.LeadsCSV)
			leadsGroup.GET("/:id", c.LeadHandler.Get)
			leadsGroup.PUT("/:id", c.LeadHandler.Update)
			leadsGroup.DELETE("/:id", c.LeadHandler.Delete)
			leadsGroup.POST("/:id/assign", c.LeadHandler.Assign)
			leadsGroup.PATCH("/:id/status", c.LeadHandler.UpdateStatus)
			leadsGroup.GET("/:id/activities", c.ActivityHandler.ListByLead)
		}

		activitiesGroup := protected.Group("/activities")
		{
			activitiesGroup.GET("", c.ActivityHandler.List)
			activitiesGroup.POST("", c.ActivityHandler.Create)
			activitiesGroup.GET("/:id", c.ActivityHandler.Get)
			activitiesGroup.PUT("/:id", c.ActivityHandler.Update)
			activitiesGroup.DELETE("/:id", c.ActivityHandler.Delete)
		}

		dashboardGroup := protected.Group("/dashboard")
		{
			dashboardGroup.GET("/stats", c.DashboardHandler.Stats)
			dashboardGroup.GET("/leads-by-status", c.DashboardHandler.LeadsByStatus)
			dashboardGroup.GET("/leads-by-source", c.DashboardHandler.LeadsBySource)
			dashboardGroup.GET("/sales-pipeline", c.DashboardHandler.SalesPipeline)
			dashboardGroup.GET("/recent-activities", c.DashboardHandler.RecentActivities)
			dashboardGroup.GET("/team-performance", c.DashboardHandler.TeamPerformance)
		}

		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("", c.UserHandler.List)
			usersGroup.GET("/:id", c.UserHandler.Get)
			usersGroup.PUT("/:id", c.UserHandler.Update)
			usersGroup.DELETE("/:id", c.UserHandler.Delete)
		}
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 SalesPipe API starting on %s", address)
	log.Printf("🔐 JWT expiration: %d hours", cfg.JWTExpirationHours)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d)", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	log.Printf("⏰ Cron jobs: Daily 8AM (activity reminders), Hourly (dashboard cache sweep)")

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
