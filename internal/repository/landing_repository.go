package repository

import (
	"context"

	"github.com/proman-app/proman/internal/models"

	"gorm.io/gorm"
)

// landingRepository implements LandingRepository interface
type landingRepository struct {
	db *gorm.DB
}

// NewLandingRepository creates a new LandingRepository instance
func NewLandingRepository(db *gorm.DB) LandingRepository {
	return &landingRepository{db: db}
}

func (r *landingRepository) Get(ctx context.Context, id uint) (*models.LandingContent, error) {
	var content models.LandingContent
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *landingRepository) List(ctx context.Context) ([]models.LandingContent, error) {
	var contents []models.LandingContent
	err := r.db.WithContext(ctx).
		Order("section ASC, order_num ASC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *landingRepository) ListBySection(ctx context.Context, section string) ([]models.LandingContent, error) {
	var contents []models.LandingContent
	err := r.db.WithContext(ctx).
		Where("section = ?", section).
		Order("order_num ASC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *landingRepository) Create(ctx context.Context, content *models.LandingContent) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *landingRepository) Update(ctx context.Context, content *models.LandingContent) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *landingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LandingContent{}, id).Error
}
