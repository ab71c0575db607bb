package db

import (
	"fmt"
	"time"

	"github.com/proman-app/proman/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates the database with demo users, projects, tasks and landing
// content. Users are keyed by username, so re-running the command is a no-op
// for rows that already exist.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []models.User{
		{Username: "admin", PasswordHash: string(hash), Fullname: "Admin User", Email: "admin@proman.com", Role: models.RoleAdmin},
		{Username: "pm1", PasswordHash: string(hash), Fullname: "Project Manager One", Email: "pm1@proman.com", Role: models.RoleProjectManager},
		{Username: "pm2", PasswordHash: string(hash), Fullname: "Project Manager Two", Email: "pm2@proman.com", Role: models.RoleProjectManager},
		{Username: "member1", PasswordHash: string(hash), Fullname: "Team Member One", Email: "member1@proman.com", Role: models.RoleTeamMember},
		{Username: "member2", PasswordHash: string(hash), Fullname: "Team Member Two", Email: "member2@proman.com", Role: models.RoleTeamMember},
		{Username: "member3", PasswordHash: string(hash), Fullname: "Team Member Three", Email: "member3@proman.com", Role: models.RoleTeamMember},
	}

	byUsername := make(map[string]models.User, len(users))
	for _, u := range users {
		var existing models.User
		err := db.Where("username = ?", u.Username).First(&existing).Error
		if err == nil {
			byUsername[u.Username] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up user %s: %w", u.Username, err)
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
		byUsername[u.Username] = u
	}

	// Any project already present means a previous seed run; skip sample data.
	var projectCount int64
	if err := db.Model(&models.Project{}).Count(&projectCount).Error; err != nil {
		return err
	}
	if projectCount > 0 {
		return nil
	}

	pm1 := byUsername["pm1"].ID
	pm2 := byUsername["pm2"].ID
	member1 := byUsername["member1"].ID
	member2 := byUsername["member2"].ID
	member3 := byUsername["member3"].ID

	date := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}

	projects := []models.Project{
		{Name: "Website Redesign", Description: "Redesign company website with modern UI/UX", StartDate: date("2025-01-01"), EndDate: date("2025-03-31"), Status: models.ProjectStatusActive, CreatedBy: pm1},
		{Name: "Mobile App Development", Description: "Create a mobile app for both iOS and Android", StartDate: date("2025-02-15"), EndDate: date("2025-06-30"), Status: models.ProjectStatusActive, CreatedBy: pm1},
		{Name: "Database Migration", Description: "Migrate from SQL Server to PostgreSQL", StartDate: date("2025-03-10"), EndDate: date("2025-04-30"), Status: models.ProjectStatusCompleted, CreatedBy: pm2},
	}
	for i := range projects {
		if err := db.Create(&projects[i]).Error; err != nil {
			return fmt.Errorf("failed to seed project %s: %w", projects[i].Name, err)
		}
	}

	members := []models.ProjectMember{
		{ProjectID: projects[0].ID, UserID: pm1, Role: models.ProjectRoleManager},
		{ProjectID: projects[0].ID, UserID: member1, Role: models.ProjectRoleMember},
		{ProjectID: projects[0].ID, UserID: member2, Role: models.ProjectRoleMember},
		{ProjectID: projects[1].ID, UserID: pm1, Role: models.ProjectRoleManager},
		{ProjectID: projects[1].ID, UserID: member1, Role: models.ProjectRoleMember},
		{ProjectID: projects[1].ID, UserID: member3, Role: models.ProjectRoleMember},
		{ProjectID: projects[2].ID, UserID: pm2, Role: models.ProjectRoleManager},
		{ProjectID: projects[2].ID, UserID: member2, Role: models.ProjectRoleMember},
		{ProjectID: projects[2].ID, UserID: member3, Role: models.ProjectRoleMember},
	}
	for i := range members {
		if err := db.Create(&members[i]).Error; err != nil {
			return fmt.Errorf("failed to seed project members: %w", err)
		}
	}

	assignee := func(id uint) *uint { return &id }
	tasks := []models.Task{
		{ProjectID: projects[0].ID, Name: "Design Homepage", Description: "Create wireframe and design for homepage", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, StartDate: date("2025-01-05"), DueDate: date("2025-01-20"), CreatedBy: pm1, AssignedTo: assignee(member1), Progress: 75},
		{ProjectID: projects[0].ID, Name: "Develop Homepage", Description: "Implement homepage design with HTML/CSS", Status: models.TaskStatusPending, Priority: models.TaskPriorityMedium, StartDate: date("2025-01-21"), DueDate: date("2025-02-10"), CreatedBy: pm1, AssignedTo: assignee(member2)},
		{ProjectID: projects[0].ID, Name: "Design About Page", Description: "Create wireframe and design for about page", Status: models.TaskStatusCompleted, Priority: models.TaskPriorityMedium, StartDate: date("2025-01-05"), DueDate: date("2025-01-15"), CreatedBy: pm1, AssignedTo: assignee(member1), Progress: 100},
		{ProjectID: projects[1].ID, Name: "Setup React Native", Description: "Initialize React Native project and dependencies", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, StartDate: date("2025-02-16"), DueDate: date("2025-02-28"), CreatedBy: pm1, AssignedTo: assignee(member3), Progress: 50},
		{ProjectID: projects[1].ID, Name: "Design User Interface", Description: "Create app UI design in Figma", Status: models.TaskStatusPending, Priority: models.TaskPriorityHigh, StartDate: date("2025-03-01"), DueDate: date("2025-03-15"), CreatedBy: pm1, AssignedTo: assignee(member1)},
		{ProjectID: projects[2].ID, Name: "Data Schema Planning", Description: "Plan migration data schema", Status: models.TaskStatusCompleted, Priority: models.TaskPriorityHigh, StartDate: date("2025-03-10"), DueDate: date("2025-03-20"), CreatedBy: pm2, AssignedTo: assignee(member2), Progress: 100},
		{ProjectID: projects[2].ID, Name: "Test Migration Script", Description: "Test migration script with sample data", Status: models.TaskStatusCompleted, Priority: models.TaskPriorityMedium, StartDate: date("2025-03-21"), DueDate: date("2025-04-05"), CreatedBy: pm2, AssignedTo: assignee(member3), Progress: 100},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			return fmt.Errorf("failed to seed task %s: %w", tasks[i].Name, err)
		}
	}

	admin := byUsername["admin"].ID
	landing := []models.LandingContent{
		{Section: "hero", Title: "Manage Projects With Confidence", Content: "Plan, assign and track work across your whole team in real time.", ButtonText: "Get Started", ButtonLink: "/auth/login", OrderNum: 1, UpdatedBy: admin},
		{Section: "features", Title: "Role-Based Access", Content: "Admins, project managers and team members each see exactly what they need.", OrderNum: 1, UpdatedBy: admin},
		{Section: "features", Title: "Live Updates", Content: "Task and project changes reach every connected client instantly.", OrderNum: 2, UpdatedBy: admin},
		{Section: "features", Title: "Progress Tracking", Content: "Per-task progress rolls up into project dashboards automatically.", OrderNum: 3, UpdatedBy: admin},
	}
	for i := range landing {
		if err := db.Create(&landing[i]).Error; err != nil {
			return fmt.Errorf("failed to seed landing content: %w", err)
		}
	}

	return nil
}
