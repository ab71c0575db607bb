package repository

import (
	"context"
	"time"

	"github.com/proman-app/proman/internal/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ? AND is_active = ? AND expires_at > ?", token, true, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Touch(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).
		Model(session).
		Update("last_used", time.Now()).Error
}

func (r *sessionRepository) Invalidate(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("token = ?", token).
		Update("is_active", false).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", olderThan).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
