package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/auth"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware creates a JWT authentication middleware
func JWTMiddleware(secret string, db *ent.Client) echo.MiddlewareFunc {
	return JWTMiddlewareWithBlacklist(secret, nil, db)
}

// JWTMiddlewareWithBlacklist creates a JWT authentication middleware
// with blacklist support. The authenticated *ent.User is loaded once
// here and stored in context as "actor"; inactive accounts are
// rejected.
func JWTMiddlewareWithBlacklist(secret string, blacklist *auth.TokenBlacklist, db *ent.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "missing_token",
					Message: "Authorization header is required",
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "invalid_token_format",
					Message: "Authorization header must be 'Bearer {token}'",
				})
			}

			token := parts[1]

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			claims, err := auth.ValidateJWTWithBlacklist(ctx, token, secret, blacklist)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "invalid_token",
					Message: err.Error(),
				})
			}

			u, err := db.User.Get(ctx, claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "user_not_found",
					Message: "User account not found",
				})
			}
			if !u.IsActive {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "account_disabled",
					Message: "This account has been deactivated",
				})
			}

			// Store token in context for potential logout
			c.Set("token", token)

			c.Set("user_id", u.ID)
			c.Set("user_email", u.Email)
			c.Set("user_role", string(u.Role))
			c.Set("actor", u)

			return next(c)
		}
	}
}

// RequireRole ensures the authenticated user has one of the given
// roles. Apply AFTER the JWT middleware.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get("actor").(*ent.User)
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Authentication required",
				})
			}

			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "insufficient_permissions",
				Message: "You do not have permission to access this resource",
			})
		}
	}
}

// Actor extracts the authenticated user from context.
func Actor(c echo.Context) (*ent.User, bool) {
	actor, ok := c.Get("actor").(*ent.User)
	return actor, ok
}
