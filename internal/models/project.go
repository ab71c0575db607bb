package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Status      ProjectStatus   `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedBy   uint            `gorm:"index;not null" json:"created_by"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks       []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
)

// ProjectMember is the join entity between projects and users. A user's role
// here is scoped to the project and independent of their global role.
type ProjectMember struct {
	gorm.Model
	ProjectID uint        `gorm:"index:idx_project_user,unique;not null" json:"project_id"`
	UserID    uint        `gorm:"index:idx_project_user,unique;not null" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);default:'member'" json:"role"`
	User      User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type ProjectRole string

const (
	ProjectRoleManager ProjectRole = "manager"
	ProjectRoleMember  ProjectRole = "member"
)

// ProjectProgress is the aggregate used by dashboards.
type ProjectProgress struct {
	TotalTasks         int `json:"total_tasks"`
	CompletedTasks     int `json:"completed_tasks"`
	ProgressPercentage int `json:"progress_percentage"`
}
