// Package authz holds the resource-level authorization predicates. They are
// pure functions: membership facts are passed in by the caller, never fetched
// here. Route-level role gating is a separate layer (middleware.RequireRole);
// both gates must pass, and the caller must surface the two failure modes
// identically so a denied request does not reveal which gate rejected it.
package authz

import (
	"github.com/proman-app/proman/internal/models"
)

// IsMember reports whether the user appears in the membership list.
func IsMember(userID uint, members []models.ProjectMember) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsProjectManager reports whether the user holds the manager project role.
func IsProjectManager(userID uint, members []models.ProjectMember) bool {
	for _, m := range members {
		if m.UserID == userID && m.Role == models.ProjectRoleManager {
			return true
		}
	}
	return false
}

// CanViewProject allows admins, the project owner and any project member.
func CanViewProject(user *models.User, project *models.Project, members []models.ProjectMember) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	if project.CreatedBy == user.ID {
		return true
	}
	return IsMember(user.ID, members)
}

// CanEditProject allows the project owner and members holding the manager
// project role. A global admin role grants no edit authority here; admin
// operations go through their own route namespace.
func CanEditProject(user *models.User, project *models.Project, members []models.ProjectMember) bool {
	if project.CreatedBy == user.ID {
		return true
	}
	return IsProjectManager(user.ID, members)
}

// CanViewTask allows the assignee and any member of the task's project.
func CanViewTask(user *models.User, task *models.Task, members []models.ProjectMember) bool {
	if task.AssignedToID() == user.ID {
		return true
	}
	return IsMember(user.ID, members)
}

// CanEditTask allows the assignee to mutate their own task, and anyone with
// edit authority over the parent project.
func CanEditTask(user *models.User, task *models.Task, project *models.Project, members []models.ProjectMember) bool {
	if task.AssignedToID() == user.ID {
		return true
	}
	return CanEditProject(user, project, members)
}

// CanRemoveMember never allows removing the project owner; otherwise removal
// is governed by edit authority over the project.
func CanRemoveMember(user *models.User, project *models.Project, members []models.ProjectMember, memberID uint) bool {
	if memberID == project.CreatedBy {
		return false
	}
	return CanEditProject(user, project, members)
}
