package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes configures endpoints that need no session.
func SetupPublicRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health.Check)

	// Websocket upgrade; clients authenticate over the socket protocol
	router.GET("/ws", h.Realtime.Serve)

	landing := router.Group("/api/v1/landing")
	{
		landing.GET("", h.Landing.List)
		landing.GET("/:section", h.Landing.GetSection)
	}
}
