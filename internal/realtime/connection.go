package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum inbound message size in bytes.
	maxMessageSize = 4096
	// Outbound buffer size per connection.
	sendBufferSize = 64
)

// Connection is one live socket. It is bound to a user identity only after
// an explicit auth message, and to exactly the channels it joined.
type Connection struct {
	ID string

	hub *Hub
	ws  *websocket.Conn

	send chan Event

	// guarded by hub.mu
	userID   uint
	channels map[string]struct{}
}

// NewConnection wraps a websocket in a hub connection. The caller must
// Register it and start the pumps.
func NewConnection(hub *Hub, ws *websocket.Conn) *Connection {
	return &Connection{
		ID:       uuid.New().String(),
		hub:      hub,
		ws:       ws,
		send:     make(chan Event, sendBufferSize),
		channels: make(map[string]struct{}),
	}
}

// clientMessage is one inbound frame.
type clientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Run starts the read and write pumps and blocks until the peer disconnects.
func (c *Connection) Run() {
	go c.writePump()
	c.readPump()
}

// Close tears down the underlying socket; the read pump then unregisters
// the connection from the hub.
func (c *Connection) Close() {
	c.ws.Close()
}

func (c *Connection) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("Connection %s read error: %v", c.ID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.hub.logger.Warn("Connection %s sent malformed frame: %v", c.ID, err)
			continue
		}
		c.dispatch(msg)
	}
}

// dispatch routes one client event. Unknown events are ignored.
func (c *Connection) dispatch(msg clientMessage) {
	var id uint
	if err := json.Unmarshal(msg.Data, &id); err != nil {
		c.hub.logger.Warn("Connection %s sent non-numeric id for %s", c.ID, msg.Event)
		return
	}

	switch msg.Event {
	case "auth":
		c.hub.Authenticate(c, id)
	case "join-project":
		c.hub.JoinProject(c, id)
	case "leave-project":
		c.hub.LeaveProject(c, id)
	case "join-task":
		c.hub.JoinTask(c, id)
	case "leave-task":
		c.hub.LeaveTask(c, id)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel on unregister.
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
