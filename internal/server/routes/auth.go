package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures login, logout and session introspection.
func SetupAuthRoutes(v1 *gin.RouterGroup, h *Handlers, m *Middleware) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", m.Auth.RequireAuth(), h.Auth.GetSession)
	}
}
