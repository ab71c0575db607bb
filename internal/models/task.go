package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model
	ProjectID   uint         `gorm:"index;not null" json:"project_id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	StartDate   *time.Time   `json:"start_date"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedBy   uint         `gorm:"index" json:"created_by"`
	AssignedTo  *uint        `gorm:"index" json:"assigned_to"`
	Progress    int          `gorm:"default:0" json:"progress"`
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known task states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known levels.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// AssignedToID returns the assignee id, or 0 when unassigned.
func (t *Task) AssignedToID() uint {
	if t.AssignedTo == nil {
		return 0
	}
	return *t.AssignedTo
}
