package authz

import (
	"testing"

	"github.com/proman-app/proman/internal/models"

	"github.com/stretchr/testify/assert"
)

func user(id uint, role models.UserRole) *models.User {
	u := &models.User{Role: role}
	u.ID = id
	return u
}

func project(owner uint) *models.Project {
	return &models.Project{CreatedBy: owner}
}

func members(entries ...models.ProjectMember) []models.ProjectMember {
	return entries
}

func member(userID uint, role models.ProjectRole) models.ProjectMember {
	return models.ProjectMember{UserID: userID, Role: role}
}

func TestCanViewProject(t *testing.T) {
	p := project(1)
	roster := members(
		member(2, models.ProjectRoleManager),
		member(3, models.ProjectRoleMember),
	)

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"owner", user(1, models.RoleProjectManager), true},
		{"manager member", user(2, models.RoleProjectManager), true},
		{"plain member", user(3, models.RoleTeamMember), true},
		{"admin without membership", user(9, models.RoleAdmin), true},
		{"outsider", user(4, models.RoleTeamMember), false},
		{"outsider pm", user(5, models.RoleProjectManager), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewProject(tt.user, p, roster))
		})
	}
}

func TestCanEditProject(t *testing.T) {
	p := project(1)
	roster := members(
		member(2, models.ProjectRoleManager),
		member(3, models.ProjectRoleMember),
	)

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"owner", user(1, models.RoleProjectManager), true},
		{"manager member", user(2, models.RoleProjectManager), true},
		{"plain member", user(3, models.RoleTeamMember), false},
		{"admin has no edit authority", user(9, models.RoleAdmin), false},
		{"outsider", user(4, models.RoleProjectManager), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditProject(tt.user, p, roster))
		})
	}
}

func TestCanViewTask(t *testing.T) {
	roster := members(member(3, models.ProjectRoleMember))
	assignee := uint(7)
	task := &models.Task{AssignedTo: &assignee}

	assert.True(t, CanViewTask(user(7, models.RoleTeamMember), task, roster), "assignee outside the roster can view")
	assert.True(t, CanViewTask(user(3, models.RoleTeamMember), task, roster), "project member can view")
	assert.False(t, CanViewTask(user(4, models.RoleTeamMember), task, roster), "outsider cannot view")
}

func TestCanViewTaskUnassigned(t *testing.T) {
	roster := members(member(3, models.ProjectRoleMember))
	task := &models.Task{}

	// Zero user ID must not match an unassigned task
	assert.False(t, CanViewTask(user(4, models.RoleTeamMember), task, roster))
	assert.True(t, CanViewTask(user(3, models.RoleTeamMember), task, roster))
}

func TestCanEditTask(t *testing.T) {
	p := project(1)
	roster := members(
		member(2, models.ProjectRoleManager),
		member(3, models.ProjectRoleMember),
	)
	assignee := uint(3)
	task := &models.Task{AssignedTo: &assignee}

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"assignee", user(3, models.RoleTeamMember), true},
		{"owner", user(1, models.RoleProjectManager), true},
		{"manager member", user(2, models.RoleProjectManager), true},
		{"non-assignee plain member", user(6, models.RoleTeamMember), false},
		{"outsider", user(4, models.RoleTeamMember), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditTask(tt.user, task, p, roster))
		})
	}
}

func TestCanRemoveMember(t *testing.T) {
	p := project(1)
	roster := members(
		member(1, models.ProjectRoleManager),
		member(2, models.ProjectRoleManager),
		member(3, models.ProjectRoleMember),
	)

	// The owner can never be removed, not even by themselves
	assert.False(t, CanRemoveMember(user(1, models.RoleProjectManager), p, roster, 1))
	assert.False(t, CanRemoveMember(user(2, models.RoleProjectManager), p, roster, 1))

	assert.True(t, CanRemoveMember(user(1, models.RoleProjectManager), p, roster, 3))
	assert.True(t, CanRemoveMember(user(2, models.RoleProjectManager), p, roster, 3))
	assert.False(t, CanRemoveMember(user(3, models.RoleTeamMember), p, roster, 2), "plain member cannot remove others")
}
