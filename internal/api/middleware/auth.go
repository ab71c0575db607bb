package middleware

import (
	"net/http"

	"github.com/proman-app/proman/internal/api/constants"
	"github.com/proman-app/proman/internal/api/dto/common"
	"github.com/proman-app/proman/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the session cookie into an authenticated user.
type AuthMiddleware struct {
	sessions repository.SessionRepository
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth rejects requests without a valid, active, unexpired session.
// On success the user and session are placed in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
			c.Abort()
			return
		}

		session, err := m.sessions.GetActiveByToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid or expired session", nil))
			c.Abort()
			return
		}

		// Best effort; an unrecorded touch never fails the request
		_ = m.sessions.Touch(c.Request.Context(), session)

		user := session.User
		c.Set(constants.ContextKeyUser, &user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeySession, session)
		c.Next()
	}
}
