package service

import (
	"github.com/proman-app/proman/internal/realtime"
)

// Broadcaster is the slice of the realtime hub the services need. Calls are
// fire-and-forget: they return immediately and can never fail the mutation
// that triggered them.
type Broadcaster interface {
	EmitProjectUpdate(projectID uint, payload realtime.Payload)
	EmitTaskUpdate(taskID, projectID uint, payload realtime.Payload)
	EmitNewComment(taskID, projectID uint, comment realtime.Payload)
	EmitUserNotification(userID uint, notification realtime.Payload)
	EmitTaskAssignment(userID uint, task realtime.Payload)
	EmitProjectInvitation(userID uint, project realtime.Payload)
}
