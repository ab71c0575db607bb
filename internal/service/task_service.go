package service

import (
	"context"
	"errors"
	"time"

	"github.com/proman-app/proman/internal/authz"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/realtime"
	"github.com/proman-app/proman/internal/repository"

	"gorm.io/gorm"
)

// TaskService carries the task flows. Broadcasts always follow a successful
// persist, never precede it.
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	hub      Broadcaster
}

// NewTaskService creates a new TaskService instance
func NewTaskService(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	hub Broadcaster,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		hub:      hub,
	}
}

// TaskInput is the payload for creating or updating a task.
type TaskInput struct {
	Name        string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	StartDate   *time.Time
	DueDate     *time.Time
	AssignedTo  *uint
}

// TaskDetail bundles a task with its comment thread.
type TaskDetail struct {
	Task     *models.Task     `json:"task"`
	Comments []models.Comment `json:"comments"`
}

func (in *TaskInput) validate() error {
	if in.Name == "" || !in.Status.Valid() || !in.Priority.Valid() {
		return ErrValidation
	}
	return nil
}

// Create creates a task in a project, gated on project edit authority.
// Assigning the task at creation additionally notifies the assignee.
func (s *TaskService) Create(ctx context.Context, user *models.User, projectID uint, input TaskInput) (*models.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	project, members, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditProject(user, project, members) {
		return nil, ErrPermissionDenied
	}

	task := &models.Task{
		ProjectID:   projectID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		CreatedBy:   user.ID,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.hub.EmitTaskUpdate(task.ID, projectID, realtime.Payload{
		"type": "create",
		"task": task,
	})
	if task.AssignedTo != nil {
		s.hub.EmitTaskAssignment(*task.AssignedTo, realtime.Payload{
			"taskId":      task.ID,
			"taskName":    task.Name,
			"projectId":   projectID,
			"projectName": project.Name,
		})
	}
	return task, nil
}

// Get returns the task detail, gated on view access (assignee or project
// member).
func (s *TaskService) Get(ctx context.Context, user *models.User, taskID uint) (*TaskDetail, error) {
	task, _, members, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewTask(user, task, members) {
		return nil, ErrPermissionDenied
	}

	comments, err := s.tasks.Comments(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: task, Comments: comments}, nil
}

// Update edits a task under project edit authority. The task's project is
// immutable; an assignee change notifies the new assignee.
func (s *TaskService) Update(ctx context.Context, user *models.User, taskID uint, input TaskInput) (*models.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task, project, members, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditProject(user, project, members) {
		return nil, ErrPermissionDenied
	}

	previousAssignee := task.AssignedToID()

	task.Name = input.Name
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.StartDate = input.StartDate
	task.DueDate = input.DueDate
	task.AssignedTo = input.AssignedTo
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.hub.EmitTaskUpdate(taskID, task.ProjectID, realtime.Payload{
		"type": "update",
		"task": task,
	})
	if task.AssignedTo != nil && *task.AssignedTo != previousAssignee {
		s.hub.EmitTaskAssignment(*task.AssignedTo, realtime.Payload{
			"taskId":      taskID,
			"taskName":    task.Name,
			"projectId":   task.ProjectID,
			"projectName": project.Name,
		})
	}
	return task, nil
}

// Delete removes a task under project edit authority and broadcasts the
// deletion.
func (s *TaskService) Delete(ctx context.Context, user *models.User, taskID uint) error {
	task, project, members, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.CanEditProject(user, project, members) {
		return ErrPermissionDenied
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.hub.EmitTaskUpdate(taskID, task.ProjectID, realtime.Payload{
		"type":   "delete",
		"taskId": taskID,
	})
	return nil
}

// UpdateStatus sets the task status. The assignee may move their own task;
// otherwise project edit authority is required.
func (s *TaskService) UpdateStatus(ctx context.Context, user *models.User, taskID uint, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrValidation
	}

	task, project, members, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.CanEditTask(user, task, project, members) {
		return ErrPermissionDenied
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, status); err != nil {
		return err
	}

	s.hub.EmitTaskUpdate(taskID, task.ProjectID, realtime.Payload{
		"type":   "status",
		"taskId": taskID,
		"status": status,
	})
	return nil
}

// UpdateProgress sets the task progress. Reaching 100 forces the status to
// completed as a second, dependent mutation with its own broadcast, in that
// order. Dropping below 100 never reverts a completed status: completion is
// a one-way milestone.
func (s *TaskService) UpdateProgress(ctx context.Context, user *models.User, taskID uint, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrValidation
	}

	task, project, members, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.CanEditTask(user, task, project, members) {
		return ErrPermissionDenied
	}

	if err := s.tasks.UpdateProgress(ctx, taskID, progress); err != nil {
		return err
	}
	s.hub.EmitTaskUpdate(taskID, task.ProjectID, realtime.Payload{
		"type":     "progress",
		"taskId":   taskID,
		"progress": progress,
	})

	if progress == 100 && task.Status != models.TaskStatusCompleted {
		if err := s.tasks.UpdateStatus(ctx, taskID, models.TaskStatusCompleted); err != nil {
			return err
		}
		s.hub.EmitTaskUpdate(taskID, task.ProjectID, realtime.Payload{
			"type":   "status",
			"taskId": taskID,
			"status": models.TaskStatusCompleted,
		})
	}
	return nil
}

// AddComment appends a comment, visible to the task channel and wrapped as a
// project notification. Any project member or the assignee may comment.
func (s *TaskService) AddComment(ctx context.Context, user *models.User, taskID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, ErrValidation
	}

	task, _, members, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewTask(user, task, members) {
		return nil, ErrPermissionDenied
	}

	comment := &models.Comment{
		TaskID:  taskID,
		UserID:  user.ID,
		Content: content,
	}
	if err := s.tasks.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	s.hub.EmitNewComment(taskID, task.ProjectID, realtime.Payload{
		"id":         comment.ID,
		"task_id":    taskID,
		"user_id":    user.ID,
		"content":    content,
		"created_at": comment.CreatedAt,
		"fullname":   user.Fullname,
		"avatar":     user.Avatar,
	})
	return comment, nil
}

// ListForAssignee returns the user's assigned tasks.
func (s *TaskService) ListForAssignee(ctx context.Context, userID uint) ([]models.Task, error) {
	return s.tasks.ListByAssignee(ctx, userID)
}

func (s *TaskService) loadProject(ctx context.Context, projectID uint) (*models.Project, []models.ProjectMember, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	members, err := s.projects.Members(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return project, members, nil
}

func (s *TaskService) loadTask(ctx context.Context, taskID uint) (*models.Task, *models.Project, []models.ProjectMember, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, err
	}
	project, members, err := s.loadProject(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, nil, err
	}
	return task, project, members, nil
}
