package container

import (
	"time"

	"github.com/jordanlanch/salespipe/config"
	"github.com/jordanlanch/salespipe/pkg/activities"
	"github.com/jordanlanch/salespipe/pkg/api/handlers"
	"github.com/jordanlanch/salespipe/pkg/auth"
	"github.com/jordanlanch/salespipe/pkg/cache"
	"github.com/jordanlanch/salespipe/pkg/dashboard"
	"github.com/jordanlanch/salespipe/pkg/database"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/email"
	"github.com/jordanlanch/salespipe/pkg/export"
	"github.com/jordanlanch/salespipe/pkg/jobs"
	"github.com/jordanlanch/salespipe/pkg/leads"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/metrics"
	"github.com/jordanlanch/salespipe/pkg/policy"
	"github.com/jordanlanch/salespipe/pkg/realtime"
	"github.com/jordanlanch/salespipe/pkg/users"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger logger.Logger

	// Infrastructure
	DB      *database.Client
	Cache   domain.CacheRepository
	Metrics *metrics.Metrics

	// Realtime
	Hub             *realtime.Hub
	RealtimeHandler *realtime.Handler

	// Services
	Policy           *policy.Evaluator
	LeadService      *leads.Service
	ActivityService  *activities.Service
	DashboardService *dashboard.Service
	UserService      *users.Service
	ExportService    *export.Service
	EmailService     *email.Service

	// Auth
	TokenBlacklist *auth.TokenBlacklist

	// Background jobs
	Cron *jobs.CronManager

	// Handlers
	AuthHandler      *handlers.AuthHandler
	LeadHandler      *handlers.LeadHandler
	ActivityHandler  *handlers.ActivityHandler
	DashboardHandler *handlers.DashboardHandler
	UserHandler      *handlers.UserHandler
	ExportHandler    *handlers.ExportHandler
}

// New creates and initializes all application dependencies
func New(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger.New(cfg.LogLevel),
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initServices()
	c.initHandlers()

	c.Logger.Info("Container initialized successfully",
		"environment", cfg.APIEnvironment,
		"database", "connected",
		"cache", "connected")

	return c, nil
}

// initInfrastructure initializes database, cache and metrics
func (c *Container) initInfrastructure() error {
	var err error

	c.DB, err = database.NewClient(c.Config.DatabaseURL)
	if err != nil {
		c.Logger.Error("Failed to connect to database", "error", err)
		return err
	}

	cacheClient, err := cache.NewClient(c.Config.RedisURL)
	if err != nil {
		c.Logger.Error("Failed to connect to cache", "error", err)
		return err
	}
	c.Cache = cacheClient

	c.Metrics = metrics.New()

	c.Logger.Info("Infrastructure initialized",
		"database", "connected",
		"cache", "connected")

	return nil
}

// initServices initializes the realtime hub and all domain services
func (c *Container) initServices() {
	cacheClient, ok := c.Cache.(*cache.Client)
	if !ok {
		c.Logger.Error("Cache is not a *cache.Client")
		return
	}

	c.TokenBlacklist = auth.NewTokenBlacklist(cacheClient)

	c.Hub = realtime.NewHub(c.Logger)
	c.RealtimeHandler = realtime.NewHandler(c.Hub, c.DB.Ent, c.Config.JWTSecret, c.TokenBlacklist)

	c.EmailService = email.NewService(
		c.Config.EmailFrom,
		c.Config.EmailFromName,
		c.Config.FrontendURL,
		c.Config.SendGridAPIKey,
	)

	c.Policy = policy.NewEvaluator(c.DB.Ent)

	c.LeadService = leads.NewService(
		c.DB.Ent,
		c.Policy,
		c.Hub,
		c.EmailService,
		cacheClient,
		c.Logger,
		c.Config.DefaultPhoneRegion,
	)
	c.ActivityService = activities.NewService(c.DB.Ent, c.Policy, c.Hub, c.Logger)
	c.DashboardService = dashboard.NewService(
		c.DB.Ent,
		c.Policy,
		cacheClient,
		c.Logger,
		time.Duration(c.Config.DashboardCacheTTLSeconds)*time.Second,
	)
	c.UserService = users.NewService(c.DB.Ent, c.Logger)
	c.ExportService = export.NewService(c.DB.Ent, c.Policy, c.Logger)

	c.Cron = jobs.NewCronManager(c.DB.Ent, c.EmailService, cacheClient, c.Logger)

	c.Logger.Info("Services initialized",
		"lead_service", "ready",
		"activity_service", "ready",
		"dashboard_service", "ready",
		"export_service", "ready")
}

// initHandlers initializes all HTTP handlers
func (c *Container) initHandlers() {
	c.AuthHandler = handlers.NewAuthHandler(
		c.DB.Ent,
		c.Config,
		c.TokenBlacklist,
		c.EmailService,
		c.Metrics,
	)

	c.LeadHandler = handlers.NewLeadHandler(c.LeadService, c.Metrics)
	c.ActivityHandler = handlers.NewActivityHandler(c.ActivityService, c.Metrics)
	c.DashboardHandler = handlers.NewDashboardHandler(c.DashboardService)
	c.UserHandler = handlers.NewUserHandler(c.UserService)
	c.ExportHandler = handlers.NewExportHandler(c.ExportService)

	c.Logger.Info("Handlers initialized")
}

// Close closes all resources (database, cache connections)
func (c *Container) Close() error {
	c.Logger.Info("Shutting down container...")

	if c.Cron != nil {
		c.Cron.Stop()
	}

	if err := c.DB.Close(); err != nil {
		c.Logger.Error("Failed to close database", "error", err)
		return err
	}

	if err := c.Cache.Close(); err != nil {
		c.Logger.Error("Failed to close cache", "error", err)
		return err
	}

	c.Logger.Info("Container shutdown complete")
	return nil
}
