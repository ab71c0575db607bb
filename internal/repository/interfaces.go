package repository

import (
	"context"
	"time"

	"github.com/proman-app/proman/internal/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Get returns a user by ID
	Get(ctx context.Context, id uint) (*models.User, error)
	// GetByUsername returns a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByEmail returns a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error
	// Update persists changes to an existing user
	Update(ctx context.Context, user *models.User) error
	// Delete deletes a user by ID
	Delete(ctx context.Context, id uint) error
	// List returns all users
	List(ctx context.Context) ([]models.User, error)
	// CountByRole returns the number of users per global role
	CountByRole(ctx context.Context) (map[models.UserRole]int64, error)
}

// ProjectRepository defines the interface for project-related database operations
type ProjectRepository interface {
	// Get returns a project by ID
	Get(ctx context.Context, id uint) (*models.Project, error)
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error
	// Update persists changes to an existing project
	Update(ctx context.Context, project *models.Project) error
	// Delete deletes a project and its memberships
	Delete(ctx context.Context, id uint) error
	// List returns all projects
	List(ctx context.Context) ([]models.Project, error)
	// ListByUser returns projects the user owns or is a member of
	ListByUser(ctx context.Context, userID uint) ([]models.Project, error)
	// Members returns the membership rows of a project, with users preloaded
	Members(ctx context.Context, projectID uint) ([]models.ProjectMember, error)
	// AddMember adds a user to a project with the given project role
	AddMember(ctx context.Context, projectID, userID uint, role models.ProjectRole) error
	// RemoveMember removes a user from a project
	RemoveMember(ctx context.Context, projectID, userID uint) error
	// Progress returns the task-completion aggregate for a project
	Progress(ctx context.Context, projectID uint) (*models.ProjectProgress, error)
}

// TaskRepository defines the interface for task-related database operations
type TaskRepository interface {
	// Get returns a task by ID
	Get(ctx context.Context, id uint) (*models.Task, error)
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error
	// Update persists changes to an existing task
	Update(ctx context.Context, task *models.Task) error
	// UpdateStatus sets only the status column
	UpdateStatus(ctx context.Context, id uint, status models.TaskStatus) error
	// UpdateProgress sets only the progress column
	UpdateProgress(ctx context.Context, id uint, progress int) error
	// Delete deletes a task by ID
	Delete(ctx context.Context, id uint) error
	// ListByProject returns all tasks of a project
	ListByProject(ctx context.Context, projectID uint) ([]models.Task, error)
	// ListByAssignee returns all tasks assigned to a user
	ListByAssignee(ctx context.Context, userID uint) ([]models.Task, error)
	// AddComment appends a comment to a task
	AddComment(ctx context.Context, comment *models.Comment) error
	// Comments returns a task's comments, newest first, with users preloaded
	Comments(ctx context.Context, taskID uint) ([]models.Comment, error)
}

// SessionRepository defines the interface for session-related database operations
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *models.Session) error
	// GetActiveByToken returns an active, unexpired session by token
	GetActiveByToken(ctx context.Context, token string) (*models.Session, error)
	// Touch updates the session's last-used timestamp
	Touch(ctx context.Context, session *models.Session) error
	// Invalidate marks a session as inactive
	Invalidate(ctx context.Context, token string) error
	// DeleteExpired removes sessions past their expiry
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// LandingRepository defines the interface for landing-content database operations
type LandingRepository interface {
	// Get returns a content block by ID
	Get(ctx context.Context, id uint) (*models.LandingContent, error)
	// List returns all content blocks ordered by section and position
	List(ctx context.Context) ([]models.LandingContent, error)
	// ListBySection returns a section's content blocks in display order
	ListBySection(ctx context.Context, section string) ([]models.LandingContent, error)
	// Create creates a new content block
	Create(ctx context.Context, content *models.LandingContent) error
	// Update persists changes to a content block
	Update(ctx context.Context, content *models.LandingContent) error
	// Delete deletes a content block by ID
	Delete(ctx context.Context, id uint) error
}
