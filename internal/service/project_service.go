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

// ProjectService carries the project flows: every mutation runs the
// resource-level authorization check, persists, then broadcasts.
type ProjectService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
	hub      Broadcaster
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
	users repository.UserRepository,
	hub Broadcaster,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		users:    users,
		hub:      hub,
	}
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      models.ProjectStatus
}

// ProjectDetail bundles everything the project page needs.
type ProjectDetail struct {
	Project  *models.Project         `json:"project"`
	Members  []models.ProjectMember  `json:"members"`
	Tasks    []models.Task           `json:"tasks"`
	Progress *models.ProjectProgress `json:"progress"`
}

// ListForUser returns the projects the user owns or belongs to.
func (s *ProjectService) ListForUser(ctx context.Context, user *models.User) ([]models.Project, error) {
	return s.projects.ListByUser(ctx, user.ID)
}

// Get returns the project detail, gated on view access.
func (s *ProjectService) Get(ctx context.Context, user *models.User, projectID uint) (*ProjectDetail, error) {
	project, members, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(user, project, members) {
		return nil, ErrPermissionDenied
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	progress, err := s.projects.Progress(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project:  project,
		Members:  members,
		Tasks:    tasks,
		Progress: progress,
	}, nil
}

// Create creates a project owned by the user and enrolls them as its manager.
func (s *ProjectService) Create(ctx context.Context, user *models.User, input ProjectInput) (*models.Project, error) {
	if input.Name == "" || input.StartDate == nil {
		return nil, ErrValidation
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusActive
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		CreatedBy:   user.ID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	if err := s.projects.AddMember(ctx, project.ID, user.ID, models.ProjectRoleManager); err != nil {
		return nil, err
	}
	return project, nil
}

// Update edits a project, gated on edit authority, and broadcasts the change.
func (s *ProjectService) Update(ctx context.Context, user *models.User, projectID uint, input ProjectInput) (*models.Project, error) {
	if input.Name == "" || input.StartDate == nil || input.Status == "" {
		return nil, ErrValidation
	}

	project, members, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditProject(user, project, members) {
		return nil, ErrPermissionDenied
	}

	project.Name = input.Name
	project.Description = input.Description
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Status = input.Status
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.hub.EmitProjectUpdate(projectID, realtime.Payload{
		"type":    "update",
		"project": project,
	})
	return project, nil
}

// Delete removes a project. Only the owner may delete; a project-role
// manager may edit but not destroy.
func (s *ProjectService) Delete(ctx context.Context, user *models.User, projectID uint) error {
	project, _, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatedBy != user.ID {
		return ErrPermissionDenied
	}
	return s.projects.Delete(ctx, projectID)
}

// Members returns the membership list, gated on edit authority since it
// backs the member-management surface.
func (s *ProjectService) Members(ctx context.Context, user *models.User, projectID uint) ([]models.ProjectMember, error) {
	project, members, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditProject(user, project, members) {
		return nil, ErrPermissionDenied
	}
	return members, nil
}

// AddMember enrolls a user in the project and pushes them an invitation.
func (s *ProjectService) AddMember(ctx context.Context, user *models.User, projectID, memberID uint, role models.ProjectRole) error {
	if role != models.ProjectRoleManager && role != models.ProjectRoleMember {
		return ErrValidation
	}

	project, members, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanEditProject(user, project, members) {
		return ErrPermissionDenied
	}
	if authz.IsMember(memberID, members) {
		return ErrConflict
	}
	if _, err := s.users.Get(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.projects.AddMember(ctx, projectID, memberID, role); err != nil {
		return err
	}

	s.hub.EmitProjectInvitation(memberID, realtime.Payload{
		"projectId":   projectID,
		"projectName": project.Name,
	})
	return nil
}

// RemoveMember removes a user from the project. The owner is never removable.
func (s *ProjectService) RemoveMember(ctx context.Context, user *models.User, projectID, memberID uint) error {
	project, members, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanRemoveMember(user, project, members, memberID) {
		return ErrPermissionDenied
	}
	return s.projects.RemoveMember(ctx, projectID, memberID)
}

// load fetches the project and its membership facts in one place so every
// flow gates on the same data.
func (s *ProjectService) load(ctx context.Context, projectID uint) (*models.Project, []models.ProjectMember, error) {
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
