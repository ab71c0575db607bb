package routes

import (
	"github.com/proman-app/proman/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupManagerRoutes configures the project-manager namespace. The role
// gate only establishes the namespace; every handler behind it re-checks
// ownership or membership of the specific resource.
func SetupManagerRoutes(v1 *gin.RouterGroup, h *Handlers, m *Middleware) {
	pm := v1.Group("/pm")
	pm.Use(m.Auth.RequireAuth(), m.Role.RequireRole(models.RoleProjectManager))
	{
		pm.GET("/projects", h.Project.List)
		pm.POST("/projects", h.Project.Create)
		pm.GET("/projects/:id", h.Project.Get)
		pm.PUT("/projects/:id", h.Project.Update)
		pm.DELETE("/projects/:id", h.Project.Delete)

		pm.GET("/projects/:id/members", h.Project.Members)
		pm.POST("/projects/:id/members", h.Project.AddMember)
		pm.DELETE("/projects/:id/members/:userId", h.Project.RemoveMember)

		pm.POST("/projects/:id/tasks", h.Task.Create)
		pm.GET("/tasks/:id", h.Task.Get)
		pm.PUT("/tasks/:id", h.Task.Update)
		pm.DELETE("/tasks/:id", h.Task.Delete)
		pm.PUT("/tasks/:id/status", h.Task.UpdateStatus)
		pm.PUT("/tasks/:id/progress", h.Task.UpdateProgress)
		pm.POST("/tasks/:id/comments", h.Task.AddComment)

		pm.GET("/profile", h.Profile.GetProfile)
		pm.PUT("/profile", h.Profile.UpdateProfile)
		pm.PUT("/profile/password", h.Profile.ChangePassword)
	}
}
