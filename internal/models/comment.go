package models

import (
	"gorm.io/gorm"
)

// Comment is append-only; rows are never updated after creation.
type Comment struct {
	gorm.Model
	TaskID  uint   `gorm:"index;not null" json:"task_id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Content string `gorm:"not null" json:"content"`
	User    User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
