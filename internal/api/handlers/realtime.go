package handlers

import (
	"net/http"

	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeHandler upgrades HTTP requests to websocket connections and
// hands them to the hub. The upgrade itself is unauthenticated; clients
// claim an identity over the socket protocol afterwards, and event
// delivery is scoped by channel membership.
type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewRealtimeHandler creates a new RealtimeHandler instance
func NewRealtimeHandler(hub *realtime.Hub, logger *logging.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve upgrades the request and runs the connection's pumps.
func (h *RealtimeHandler) Serve(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed: %v", err)
		return
	}

	conn := realtime.NewConnection(h.hub, ws)
	h.hub.Register(conn)
	conn.Run()
}
