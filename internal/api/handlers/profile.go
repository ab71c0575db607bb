package handlers

import (
	userdto "github.com/proman-app/proman/internal/api/dto/v1/user"
	"github.com/proman-app/proman/internal/service"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves self-service profile operations.
type ProfileHandler struct {
	users *service.UserService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GetProfile returns the current user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	utils.HandleSuccess(c, userResponse(currentUser(c)))
}

// UpdateProfile edits the current user's fullname, email and avatar.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req userdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c), req.Fullname, req.Email, req.Avatar)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, userResponse(user))
}

// ChangePassword verifies the current password and sets a new one.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req userdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), currentUser(c), req.CurrentPassword, req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Password changed")
}
