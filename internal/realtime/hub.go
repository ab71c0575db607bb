// Package realtime maintains the websocket connections and the channel
// membership table, and exposes the broadcast API called by mutation
// handlers. Delivery is at-most-once and best effort: emits return
// immediately and cannot report failure, a full client buffer drops the
// event, and a disconnected client simply misses it.
//
// The hub performs no authorization at join time; any connection may join
// any project or task channel by id. All gating happens at the HTTP layer
// before the mutation that triggers a broadcast.
package realtime

import (
	"fmt"
	"sync"

	"github.com/proman-app/proman/internal/logging"
)

// Payload is the free-form body of a broadcast event.
type Payload map[string]interface{}

// Event is one server-to-client frame.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks live connections and their channel subscriptions. One instance
// per process, constructed at startup and injected where needed.
type Hub struct {
	mu sync.RWMutex

	// connections by connection id
	connections map[string]*Connection
	// channel name -> connection id -> connection
	rooms map[string]map[string]*Connection
	// user id -> connection ids bound to it via auth
	userConns map[uint]map[string]struct{}

	logger *logging.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		rooms:       make(map[string]map[string]*Connection),
		userConns:   make(map[uint]map[string]struct{}),
		logger:      logger,
	}
}

func userChannel(userID uint) string       { return fmt.Sprintf("user-%d", userID) }
func projectChannel(projectID uint) string { return fmt.Sprintf("project-%d", projectID) }
func taskChannel(taskID uint) string       { return fmt.Sprintf("task-%d", taskID) }

// Register adds a connection to the hub.
func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[c.ID] = c
	h.logger.Info("New client connected: %s", c.ID)
}

// Unregister removes a connection and every channel membership it holds.
// If it was the last connection bound to its user, the user index entry is
// dropped too.
func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c.ID]; !ok {
		return
	}
	delete(h.connections, c.ID)

	for channel := range c.channels {
		h.removeFromRoom(channel, c)
	}
	c.channels = make(map[string]struct{})

	if c.userID != 0 {
		if conns, ok := h.userConns[c.userID]; ok {
			delete(conns, c.ID)
			if len(conns) == 0 {
				delete(h.userConns, c.userID)
			}
		}
	}

	close(c.send)
	h.logger.Info("Client disconnected: %s", c.ID)
}

// Authenticate binds a connection to a user identity and joins the user's
// personal channel. Idempotent; the first bound identity wins for the
// lifetime of the connection. No credential is verified here: trust is
// inherited from the HTTP session that served the page.
func (h *Hub) Authenticate(c *Connection, userID uint) {
	if userID == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if c.userID != 0 {
		return
	}
	c.userID = userID

	h.addToRoom(userChannel(userID), c)
	if h.userConns[userID] == nil {
		h.userConns[userID] = make(map[string]struct{})
	}
	h.userConns[userID][c.ID] = struct{}{}

	h.logger.Info("User %d authenticated with connection %s", userID, c.ID)
}

// JoinProject subscribes the connection to a project channel.
func (h *Hub) JoinProject(c *Connection, projectID uint) {
	if projectID == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addToRoom(projectChannel(projectID), c)
}

// LeaveProject unsubscribes the connection from a project channel.
func (h *Hub) LeaveProject(c *Connection, projectID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(projectChannel(projectID), c)
	delete(c.channels, projectChannel(projectID))
}

// JoinTask subscribes the connection to a task channel.
func (h *Hub) JoinTask(c *Connection, taskID uint) {
	if taskID == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addToRoom(taskChannel(taskID), c)
}

// LeaveTask unsubscribes the connection from a task channel.
func (h *Hub) LeaveTask(c *Connection, taskID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(taskChannel(taskID), c)
	delete(c.channels, taskChannel(taskID))
}

// addToRoom must be called with h.mu held.
func (h *Hub) addToRoom(channel string, c *Connection) {
	if h.rooms[channel] == nil {
		h.rooms[channel] = make(map[string]*Connection)
	}
	h.rooms[channel][c.ID] = c
	c.channels[channel] = struct{}{}
}

// removeFromRoom must be called with h.mu held.
func (h *Hub) removeFromRoom(channel string, c *Connection) {
	room, ok := h.rooms[channel]
	if !ok {
		return
	}
	delete(room, c.ID)
	if len(room) == 0 {
		delete(h.rooms, channel)
	}
}

// publish delivers an event to every connection currently in the channel.
// A connection whose buffer is full drops the event.
func (h *Hub) publish(channel string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.rooms[channel] {
		select {
		case c.send <- event:
		default:
			h.logger.Warn("Dropping %s event for slow connection %s", event.Event, c.ID)
		}
	}
}

// EmitProjectUpdate publishes a project change to its project channel.
func (h *Hub) EmitProjectUpdate(projectID uint, payload Payload) {
	h.publish(projectChannel(projectID), Event{Event: "project-update", Data: payload})
}

// EmitTaskUpdate publishes a task change twice: the raw payload to the task
// channel, and a copy with the task id merged in to the project channel.
func (h *Hub) EmitTaskUpdate(taskID, projectID uint, payload Payload) {
	h.publish(taskChannel(taskID), Event{Event: "task-update", Data: payload})

	merged := make(Payload, len(payload)+1)
	for k, v := range payload {
		merged[k] = v
	}
	merged["taskId"] = taskID
	h.publish(projectChannel(projectID), Event{Event: "project-task-update", Data: merged})
}

// EmitNewComment publishes the raw comment to the task channel and a generic
// comment notification to the project channel.
func (h *Hub) EmitNewComment(taskID, projectID uint, comment Payload) {
	h.publish(taskChannel(taskID), Event{Event: "new-comment", Data: comment})

	wrapped := make(Payload, len(comment)+2)
	for k, v := range comment {
		wrapped[k] = v
	}
	wrapped["type"] = "comment"
	wrapped["taskId"] = taskID
	h.publish(projectChannel(projectID), Event{Event: "project-notification", Data: wrapped})
}

// EmitUserNotification publishes a free-form notification to one user.
func (h *Hub) EmitUserNotification(userID uint, notification Payload) {
	h.publish(userChannel(userID), Event{Event: "notification", Data: notification})
}

// EmitTaskAssignment notifies a user that a task was assigned to them.
func (h *Hub) EmitTaskAssignment(userID uint, task Payload) {
	h.publish(userChannel(userID), Event{Event: "task-assigned", Data: task})
}

// EmitProjectInvitation notifies a user that they were added to a project.
func (h *Hub) EmitProjectInvitation(userID uint, project Payload) {
	h.publish(userChannel(userID), Event{Event: "project-invitation", Data: project})
}

// Shutdown closes every live connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
		h.Unregister(c)
	}
}
