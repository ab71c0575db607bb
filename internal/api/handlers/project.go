package handlers

import (
	projectdto "github.com/proman-app/proman/internal/api/dto/v1/project"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/service"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
)

// ProjectHandler serves the project CRUD and membership endpoints.
// Fine-grained access decisions live in the service layer.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns the projects the current user owns or belongs to.
func (h *ProjectHandler) List(c *gin.Context) {
	user := currentUser(c)
	projects, err := h.projects.ListForUser(c.Request.Context(), user)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, projects)
}

// Create creates a project owned by the current user.
func (h *ProjectHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req projectdto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	input := service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   parseDate(req.StartDate),
		EndDate:     parseDate(req.EndDate),
		Status:      models.ProjectStatusActive,
	}

	project, err := h.projects.Create(c.Request.Context(), user, input)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, project)
}

// Get returns a project with its members, tasks and progress.
func (h *ProjectHandler) Get(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.projects.Get(c.Request.Context(), user, projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, detail)
}

// Update edits a project's fields.
func (h *ProjectHandler) Update(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req projectdto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	input := service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   parseDate(req.StartDate),
		EndDate:     parseDate(req.EndDate),
		Status:      models.ProjectStatus(req.Status),
	}

	project, err := h.projects.Update(c.Request.Context(), user, projectID, input)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, project)
}

// Delete removes a project and everything under it.
func (h *ProjectHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), user, projectID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Project deleted")
}

// Members lists a project's member roster.
func (h *ProjectHandler) Members(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	members, err := h.projects.Members(c.Request.Context(), user, projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, members)
}

// AddMember enrolls a user in a project.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req projectdto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	err := h.projects.AddMember(c.Request.Context(), user, projectID, req.UserID, models.ProjectRole(req.Role))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Member added")
}

// RemoveMember drops a user from a project. The owner cannot be removed.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), user, projectID, memberID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Member removed")
}
