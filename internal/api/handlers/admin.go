package handlers

import (
	userdto "github.com/proman-app/proman/internal/api/dto/v1/user"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/service"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves account administration and the dashboard.
// Routes mounting it sit behind the admin role gate.
type AdminHandler struct {
	users *service.UserService
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, users)
}

// CreateUser adds an account.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req userdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.UserInput{
		Username: req.Username,
		Password: req.Password,
		Fullname: req.Fullname,
		Email:    req.Email,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, user)
}

// UpdateUser edits an account, including role changes.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req userdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, service.UserInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Role:     models.UserRole(req.Role),
		Password: req.Password,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "User deleted")
}

// Dashboard returns the admin dashboard counters.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.users.DashboardStats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, stats)
}

// ProjectsOverview lists every project with its progress.
func (h *AdminHandler) ProjectsOverview(c *gin.Context) {
	overview, err := h.users.ProjectsOverview(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, overview)
}
