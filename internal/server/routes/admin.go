package routes

import (
	"github.com/proman-app/proman/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes configures the admin namespace. The role gate is
// coarse; handlers apply no further per-resource checks because admins
// administer accounts and CMS content globally.
func SetupAdminRoutes(v1 *gin.RouterGroup, h *Handlers, m *Middleware) {
	admin := v1.Group("/admin")
	admin.Use(m.Auth.RequireAuth(), m.Role.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateUser)
		admin.PUT("/users/:id", h.Admin.UpdateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.GET("/projects", h.Admin.ProjectsOverview)

		admin.POST("/landing", h.Landing.Create)
		admin.PUT("/landing/:id", h.Landing.Update)
		admin.DELETE("/landing/:id", h.Landing.Delete)
	}
}
