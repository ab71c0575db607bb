package models

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	Token     string `gorm:"uniqueIndex;not null"`
	LastUsed  time.Time
	ExpiresAt time.Time
	IsActive  bool `gorm:"default:true"`
	IPAddress string
	UserAgent string
}

// BeforeCreate is a GORM hook that runs before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.LastUsed.IsZero() {
		s.LastUsed = time.Now()
	}
	if s.ExpiresAt.IsZero() {
		// Default to 3 days from creation
		s.ExpiresAt = time.Now().AddDate(0, 0, 3)
	}
	return nil
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
