package handlers

import (
	"net/http"
	"time"

	"github.com/proman-app/proman/internal/api/constants"
	"github.com/proman-app/proman/internal/api/dto/common"
	authdto "github.com/proman-app/proman/internal/api/dto/v1/auth"
	"github.com/proman-app/proman/internal/config"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/repository"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves login, logout and session introspection.
type AuthHandler struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users repository.UserRepository, sessions repository.SessionRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cfg: cfg}
}

// Login verifies credentials and issues a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// Same response as a bad password; do not reveal which was wrong
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid username or password", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid username or password", nil))
		return
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(time.Duration(h.cfg.SessionTTLHours) * time.Hour),
		IsActive:  true,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := h.sessions.Create(c.Request.Context(), session); err != nil {
		utils.HandleInternalError(c, err, "Failed to create session")
		return
	}

	maxAge := h.cfg.SessionTTLHours * 3600
	c.SetCookie(constants.SessionCookieName, session.Token, maxAge, "/", "", h.cfg.CookieSecure, true)

	utils.HandleSuccess(c, userResponse(user))
}

// Logout invalidates the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(constants.SessionCookieName)
	if err == nil && token != "" {
		if err := h.sessions.Invalidate(c.Request.Context(), token); err != nil {
			utils.HandleInternalError(c, err, "Failed to invalidate session")
			return
		}
	}

	c.SetCookie(constants.SessionCookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	utils.HandleMessage(c, "Logged out")
}

// GetSession returns the currently authenticated user.
func (h *AuthHandler) GetSession(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
		return
	}
	utils.HandleSuccess(c, userResponse(user))
}

func userResponse(user *models.User) authdto.UserResponse {
	return authdto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
		Email:    user.Email,
		Role:     string(user.Role),
		Avatar:   user.Avatar,
	}
}
