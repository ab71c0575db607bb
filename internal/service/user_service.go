package service

import (
	"context"
	"errors"

	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers account administration, self-service profile edits
// and the admin dashboard aggregates.
type UserService struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
}

// NewUserService creates a new UserService instance
func NewUserService(users repository.UserRepository, projects repository.ProjectRepository) *UserService {
	return &UserService{users: users, projects: projects}
}

// UserInput is the admin payload for creating or updating an account.
type UserInput struct {
	Username string
	Password string
	Fullname string
	Email    string
	Role     models.UserRole
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	UsersByRole       map[models.UserRole]int64 `json:"users_by_role"`
	TotalProjects     int                       `json:"total_projects"`
	ActiveProjects    int                       `json:"active_projects"`
	CompletedProjects int                       `json:"completed_projects"`
	AverageProgress   float64                   `json:"average_progress"`
}

// ProjectOverview is one row of the admin projects table.
type ProjectOverview struct {
	Project  models.Project          `json:"project"`
	Progress *models.ProjectProgress `json:"progress"`
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// Create adds an account. Username and email must be unique.
func (s *UserService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	if !input.Role.Valid() {
		return nil, ErrValidation
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Fullname:     input.Fullname,
		Email:        input.Email,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits an account. The username is immutable; email uniqueness
// is checked against other accounts. A non-empty password resets it.
func (s *UserService) Update(ctx context.Context, id uint, input UserInput) (*models.User, error) {
	if !input.Role.Valid() {
		return nil, ErrValidation
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		if existing.ID != user.ID {
			return nil, ErrConflict
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user.Fullname = input.Fullname
	user.Email = input.Email
	user.Role = input.Role

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. An admin cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if actor.ID == id {
		return ErrValidation
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// UpdateProfile edits the caller's own fullname, email and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, fullname, email, avatar string) (*models.User, error) {
	if existing, err := s.users.GetByEmail(ctx, email); err == nil {
		if existing.ID != user.ID {
			return nil, ErrConflict
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user.Fullname = fullname
	user.Email = email
	user.Avatar = avatar
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, current, next string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

// DashboardStats aggregates the counters shown on the admin dashboard.
func (s *UserService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{UsersByRole: byRole, TotalProjects: len(projects)}
	var progressSum float64
	for _, p := range projects {
		switch p.Status {
		case models.ProjectStatusActive:
			stats.ActiveProjects++
		case models.ProjectStatusCompleted:
			stats.CompletedProjects++
		}
		progress, err := s.projects.Progress(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		progressSum += float64(progress.ProgressPercentage)
	}
	if len(projects) > 0 {
		stats.AverageProgress = progressSum / float64(len(projects))
	}
	return stats, nil
}

// ProjectsOverview lists every project with its progress.
func (s *UserService) ProjectsOverview(ctx context.Context) ([]ProjectOverview, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	overview := make([]ProjectOverview, 0, len(projects))
	for _, p := range projects {
		progress, err := s.projects.Progress(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		overview = append(overview, ProjectOverview{Project: p, Progress: progress})
	}
	return overview, nil
}
