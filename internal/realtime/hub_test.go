package realtime

import (
	"path/filepath"
	"testing"

	"github.com/proman-app/proman/internal/logging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	logger, err := logging.NewLogger(&logging.Config{
		File:       filepath.Join(t.TempDir(), "test.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)
	return NewHub(logger)
}

// newTestConn builds a connection without a socket; tests read delivered
// events straight off the send channel.
func newTestConn(h *Hub) *Connection {
	c := &Connection{
		ID:       uuid.New().String(),
		hub:      h,
		send:     make(chan Event, sendBufferSize),
		channels: make(map[string]struct{}),
	}
	h.Register(c)
	return c
}

func drain(c *Connection) []Event {
	var events []Event
	for {
		select {
		case e := <-c.send:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestEmitTaskUpdateDualPublish(t *testing.T) {
	h := newTestHub(t)
	onTask := newTestConn(h)
	onProject := newTestConn(h)

	h.JoinTask(onTask, 5)
	h.JoinProject(onProject, 2)

	h.EmitTaskUpdate(5, 2, Payload{"type": "update", "name": "Ship it"})

	taskEvents := drain(onTask)
	require.Len(t, taskEvents, 1)
	assert.Equal(t, "task-update", taskEvents[0].Event)
	taskData := taskEvents[0].Data.(Payload)
	assert.Equal(t, "update", taskData["type"])
	_, hasTaskID := taskData["taskId"]
	assert.False(t, hasTaskID, "task channel payload stays raw")

	projectEvents := drain(onProject)
	require.Len(t, projectEvents, 1)
	assert.Equal(t, "project-task-update", projectEvents[0].Event)
	projectData := projectEvents[0].Data.(Payload)
	assert.Equal(t, uint(5), projectData["taskId"])
	assert.Equal(t, "update", projectData["type"])
}

func TestEmitNewCommentWrapsProjectNotification(t *testing.T) {
	h := newTestHub(t)
	onTask := newTestConn(h)
	onProject := newTestConn(h)

	h.JoinTask(onTask, 7)
	h.JoinProject(onProject, 3)

	h.EmitNewComment(7, 3, Payload{"content": "nice work", "user_id": uint(4)})

	taskEvents := drain(onTask)
	require.Len(t, taskEvents, 1)
	assert.Equal(t, "new-comment", taskEvents[0].Event)

	projectEvents := drain(onProject)
	require.Len(t, projectEvents, 1)
	assert.Equal(t, "project-notification", projectEvents[0].Event)
	data := projectEvents[0].Data.(Payload)
	assert.Equal(t, "comment", data["type"])
	assert.Equal(t, uint(7), data["taskId"])
	assert.Equal(t, "nice work", data["content"])
}

func TestAuthenticateJoinsUserChannel(t *testing.T) {
	h := newTestHub(t)
	mine := newTestConn(h)
	other := newTestConn(h)

	h.Authenticate(mine, 10)
	h.Authenticate(other, 11)

	h.EmitTaskAssignment(10, Payload{"name": "New task"})

	require.Len(t, drain(mine), 1)
	assert.Empty(t, drain(other), "events for one user must not reach another")
}

func TestAuthenticateFirstIdentityWins(t *testing.T) {
	h := newTestHub(t)
	c := newTestConn(h)

	h.Authenticate(c, 10)
	h.Authenticate(c, 99)

	h.EmitUserNotification(10, Payload{"msg": "hello"})
	h.EmitUserNotification(99, Payload{"msg": "stolen"})

	events := drain(c)
	require.Len(t, events, 1)
	assert.Equal(t, "notification", events[0].Event)
	assert.Equal(t, "hello", events[0].Data.(Payload)["msg"])
}

func TestUnauthenticatedConnectionGetsNoUserEvents(t *testing.T) {
	h := newTestHub(t)
	c := newTestConn(h)

	h.EmitUserNotification(10, Payload{"msg": "hello"})
	assert.Empty(t, drain(c))
}

func TestJoinLeaveRejoin(t *testing.T) {
	h := newTestHub(t)
	c := newTestConn(h)

	h.JoinProject(c, 1)
	h.EmitProjectUpdate(1, Payload{"type": "update"})
	require.Len(t, drain(c), 1)

	h.LeaveProject(c, 1)
	h.EmitProjectUpdate(1, Payload{"type": "update"})
	assert.Empty(t, drain(c))

	h.JoinProject(c, 1)
	h.EmitProjectUpdate(1, Payload{"type": "update"})
	assert.Len(t, drain(c), 1)
}

func TestUnregisterCleansUp(t *testing.T) {
	h := newTestHub(t)
	c := newTestConn(h)

	h.Authenticate(c, 10)
	h.JoinProject(c, 1)
	h.JoinTask(c, 2)

	h.Unregister(c)

	h.mu.RLock()
	assert.Empty(t, h.connections)
	assert.Empty(t, h.rooms, "empty rooms are removed entirely")
	assert.Empty(t, h.userConns)
	h.mu.RUnlock()

	// The send channel is closed so the write pump can exit
	_, open := <-c.send
	assert.False(t, open)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := newTestHub(t)
	c := newTestConn(h)

	h.Unregister(c)
	// A second unregister must not close the channel again
	h.Unregister(c)
}

func TestUserIndexKeptWhileOtherConnectionsRemain(t *testing.T) {
	h := newTestHub(t)
	first := newTestConn(h)
	second := newTestConn(h)

	h.Authenticate(first, 10)
	h.Authenticate(second, 10)

	h.Unregister(first)

	h.EmitUserNotification(10, Payload{"msg": "still here"})
	assert.Len(t, drain(second), 1)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	h := newTestHub(t)
	c := &Connection{
		ID:       uuid.New().String(),
		hub:      h,
		send:     make(chan Event, 1),
		channels: make(map[string]struct{}),
	}
	h.Register(c)
	h.JoinProject(c, 1)

	h.EmitProjectUpdate(1, Payload{"n": 1})
	h.EmitProjectUpdate(1, Payload{"n": 2})

	events := drain(c)
	require.Len(t, events, 1, "second event is dropped, not queued")
	assert.Equal(t, 1, events[0].Data.(Payload)["n"])
}

func TestEmitToEmptyChannelIsNoop(t *testing.T) {
	h := newTestHub(t)
	h.EmitProjectUpdate(42, Payload{"type": "update"})
	h.EmitTaskUpdate(1, 2, Payload{"type": "update"})
}
