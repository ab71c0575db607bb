package routes

import (
	"strings"

	"github.com/proman-app/proman/internal/api/middleware"
	"github.com/proman-app/proman/internal/logging"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	// Public routes (health, landing reads, websocket upgrade)
	SetupPublicRoutes(router, h)

	// Auth routes (login is unauthenticated; session/logout need a cookie)
	SetupAuthRoutes(v1, h, m)

	// Admin routes (admin role required)
	SetupAdminRoutes(v1, h, m)

	// Project-manager routes (project_manager role required)
	SetupManagerRoutes(v1, h, m)

	// Team-member routes (team_member role required)
	SetupMemberRoutes(v1, h, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   10,
		Burst: 20,
	}))
	router.Use(handleTrailingSlash())
}

// handleTrailingSlash middleware removes the need for strict trailing slash matching
func handleTrailingSlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			c.Request.URL.Path = strings.TrimSuffix(path, "/")
		}

		c.Next()
	}
}
