package middleware

import (
	"github.com/proman-app/proman/internal/api/constants"
	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware is the coarse gate: it protects an entire route namespace
// by global role. The fine-grained ownership/membership checks live in the
// service layer; both gates must pass, and both failure modes surface the
// same denied response.
type RoleMiddleware struct{}

// NewRoleMiddleware creates a new role middleware
func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

// RequireRole ensures the authenticated user holds one of the allowed
// global roles. Must be used AFTER RequireAuth.
func (m *RoleMiddleware) RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logging.GetGlobalLogger()

		userModel, exists := c.Get(constants.ContextKeyUser)
		if !exists {
			logger.Warn("Role check attempted without authenticated user")
			utils.HandleDenied(c)
			c.Abort()
			return
		}

		user, ok := userModel.(*models.User)
		if !ok {
			logger.Error("Invalid user type in context during role check")
			utils.HandleDenied(c)
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}

		logger.Warn("User %d with role %s attempted to access %s", user.ID, user.Role, c.Request.URL.Path)
		utils.HandleDenied(c)
		c.Abort()
	}
}
