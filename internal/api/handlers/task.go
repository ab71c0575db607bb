package handlers

import (
	taskdto "github.com/proman-app/proman/internal/api/dto/v1/task"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/service"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves task CRUD, status/progress updates and comments.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create creates a task within a project.
func (h *TaskHandler) Create(c *gin.Context) {
	user := currentUser(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskdto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), user, projectID, taskInput(req.Name, req.Description, req.Status, req.Priority, req.StartDate, req.DueDate, req.AssignedTo))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, task)
}

// Get returns a task with its comment thread.
func (h *TaskHandler) Get(c *gin.Context) {
	user := currentUser(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.tasks.Get(c.Request.Context(), user, taskID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, detail)
}

// Update edits a task's fields.
func (h *TaskHandler) Update(c *gin.Context) {
	user := currentUser(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskdto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), user, taskID, taskInput(req.Name, req.Description, req.Status, req.Priority, req.StartDate, req.DueDate, req.AssignedTo))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, task)
}

// Delete removes a task and its comments.
func (h *TaskHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), user, taskID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Task deleted")
}

// UpdateStatus changes a task's status only.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	user := currentUser(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	if err := h.tasks.UpdateStatus(c.Request.Context(), user, taskID, models.TaskStatus(req.Status)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Status updated")
}

// UpdateProgress changes a task's progress percentage. Reaching 100
// also completes the task.
func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	user := currentUser(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskdto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	if err := h.tasks.UpdateProgress(c.Request.Context(), user, taskID, *req.Progress); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleMessage(c, "Progress updated")
}

// AddComment appends a comment to a task's thread.
func (h *TaskHandler) AddComment(c *gin.Context) {
	user := currentUser(c)
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskdto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleBadRequest(c, err)
		return
	}

	comment, err := h.tasks.AddComment(c.Request.Context(), user, taskID, req.Content)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, comment)
}

// ListAssigned returns the tasks assigned to the current user.
func (h *TaskHandler) ListAssigned(c *gin.Context) {
	user := currentUser(c)
	tasks, err := h.tasks.ListForAssignee(c.Request.Context(), user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, tasks)
}

func taskInput(name, description, status, priority, startDate, dueDate string, assignedTo *uint) service.TaskInput {
	return service.TaskInput{
		Name:        name,
		Description: description,
		Status:      models.TaskStatus(status),
		Priority:    models.TaskPriority(priority),
		StartDate:   parseDate(startDate),
		DueDate:     parseDate(dueDate),
		AssignedTo:  assignedTo,
	}
}
