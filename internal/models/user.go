package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Fullname     string   `gorm:"not null" json:"fullname"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Avatar       string   `json:"avatar"`
}

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleProjectManager UserRole = "project_manager"
	RoleTeamMember     UserRole = "team_member"
)

// Valid reports whether the role is one of the known global roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleTeamMember:
		return true
	}
	return false
}
