package routes

import (
	"github.com/proman-app/proman/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupMemberRoutes configures the team-member namespace. Members only
// reach projects they belong to and tasks assigned to them; the handlers
// enforce that per resource.
func SetupMemberRoutes(v1 *gin.RouterGroup, h *Handlers, m *Middleware) {
	member := v1.Group("/member")
	member.Use(m.Auth.RequireAuth(), m.Role.RequireRole(models.RoleTeamMember))
	{
		member.GET("/projects", h.Project.List)
		member.GET("/projects/:id", h.Project.Get)

		member.GET("/tasks", h.Task.ListAssigned)
		member.GET("/tasks/:id", h.Task.Get)
		member.PUT("/tasks/:id/status", h.Task.UpdateStatus)
		member.PUT("/tasks/:id/progress", h.Task.UpdateProgress)
		member.POST("/tasks/:id/comments", h.Task.AddComment)

		member.GET("/profile", h.Profile.GetProfile)
		member.PUT("/profile", h.Profile.UpdateProfile)
		member.PUT("/profile/password", h.Profile.ChangePassword)
	}
}
