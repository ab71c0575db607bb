package service

import (
	"context"
	"testing"

	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/realtime"
	"github.com/proman-app/proman/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock ProjectRepository
type mockProjectRepo struct {
	repository.ProjectRepository
	getFunc          func(ctx context.Context, id uint) (*models.Project, error)
	membersFunc      func(ctx context.Context, projectID uint) ([]models.ProjectMember, error)
	createFunc       func(ctx context.Context, project *models.Project) error
	updateFunc       func(ctx context.Context, project *models.Project) error
	deleteFunc       func(ctx context.Context, id uint) error
	addMemberCalls   []models.ProjectMember
	removeMemberFunc func(ctx context.Context, projectID, userID uint) error
}

func (m *mockProjectRepo) Get(ctx context.Context, id uint) (*models.Project, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Members(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	if m.membersFunc != nil {
		return m.membersFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	project.ID = 1
	return nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepo) AddMember(ctx context.Context, projectID, userID uint, role models.ProjectRole) error {
	m.addMemberCalls = append(m.addMemberCalls, models.ProjectMember{ProjectID: projectID, UserID: userID, Role: role})
	return nil
}

func (m *mockProjectRepo) RemoveMember(ctx context.Context, projectID, userID uint) error {
	if m.removeMemberFunc != nil {
		return m.removeMemberFunc(ctx, projectID, userID)
	}
	return nil
}

func (m *mockProjectRepo) Progress(ctx context.Context, projectID uint) (*models.ProjectProgress, error) {
	return &models.ProjectProgress{}, nil
}

// Mock TaskRepository
type mockTaskRepo struct {
	repository.TaskRepository
	getFunc         func(ctx context.Context, id uint) (*models.Task, error)
	createFunc      func(ctx context.Context, task *models.Task) error
	updateFunc      func(ctx context.Context, task *models.Task) error
	statusCalls     []models.TaskStatus
	progressCalls   []int
	addCommentFunc  func(ctx context.Context, comment *models.Comment) error
	deleteCalled    bool
	statusUpdateErr error
}

func (m *mockTaskRepo) Get(ctx context.Context, id uint) (*models.Task, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	task.ID = 10
	return nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id uint, status models.TaskStatus) error {
	if m.statusUpdateErr != nil {
		return m.statusUpdateErr
	}
	m.statusCalls = append(m.statusCalls, status)
	return nil
}

func (m *mockTaskRepo) UpdateProgress(ctx context.Context, id uint, progress int) error {
	m.progressCalls = append(m.progressCalls, progress)
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uint) error {
	m.deleteCalled = true
	return nil
}

func (m *mockTaskRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, comment)
	}
	comment.ID = 100
	return nil
}

func (m *mockTaskRepo) Comments(ctx context.Context, taskID uint) ([]models.Comment, error) {
	return nil, nil
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	return nil, nil
}

// Mock UserRepository
type mockUserRepo struct {
	repository.UserRepository
	getFunc func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

// Recording Broadcaster
type emitCall struct {
	method  string
	userID  uint
	payload realtime.Payload
}

type mockBroadcaster struct {
	calls []emitCall
}

func (m *mockBroadcaster) EmitProjectUpdate(projectID uint, payload realtime.Payload) {
	m.calls = append(m.calls, emitCall{method: "project-update", payload: payload})
}

func (m *mockBroadcaster) EmitTaskUpdate(taskID, projectID uint, payload realtime.Payload) {
	m.calls = append(m.calls, emitCall{method: "task-update", payload: payload})
}

func (m *mockBroadcaster) EmitNewComment(taskID, projectID uint, comment realtime.Payload) {
	m.calls = append(m.calls, emitCall{method: "new-comment", payload: comment})
}

func (m *mockBroadcaster) EmitUserNotification(userID uint, notification realtime.Payload) {
	m.calls = append(m.calls, emitCall{method: "notification", userID: userID, payload: notification})
}

func (m *mockBroadcaster) EmitTaskAssignment(userID uint, task realtime.Payload) {
	m.calls = append(m.calls, emitCall{method: "task-assigned", userID: userID, payload: task})
}

func (m *mockBroadcaster) EmitProjectInvitation(userID uint, project realtime.Payload) {
	m.calls = append(m.calls, emitCall{method: "project-invitation", userID: userID, payload: project})
}

// Shared fixtures. The project is owned by user 1; user 2 holds the manager
// project role, user 3 is a plain member, user 4 is an outsider.
func testUser(id uint, role models.UserRole) *models.User {
	u := &models.User{Username: "u", Role: role}
	u.ID = id
	return u
}

func testProject() *models.Project {
	p := &models.Project{Name: "Website", CreatedBy: 1, Status: models.ProjectStatusActive}
	p.ID = 1
	return p
}

func testRoster() []models.ProjectMember {
	return []models.ProjectMember{
		{ProjectID: 1, UserID: 1, Role: models.ProjectRoleManager},
		{ProjectID: 1, UserID: 2, Role: models.ProjectRoleManager},
		{ProjectID: 1, UserID: 3, Role: models.ProjectRoleMember},
	}
}

func testTask(status models.TaskStatus, assignee *uint) *models.Task {
	task := &models.Task{
		ProjectID: 1,
		Name:      "Build homepage",
		Status:    status,
		Priority:  models.TaskPriorityMedium,
	}
	task.ID = 10
	task.AssignedTo = assignee
	return task
}

func newTaskFixture(task *models.Task) (*TaskService, *mockTaskRepo, *mockBroadcaster) {
	tasks := &mockTaskRepo{}
	if task != nil {
		tasks.getFunc = func(ctx context.Context, id uint) (*models.Task, error) {
			return task, nil
		}
	}
	projects := &mockProjectRepo{
		getFunc: func(ctx context.Context, id uint) (*models.Project, error) {
			return testProject(), nil
		},
		membersFunc: func(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
			return testRoster(), nil
		},
	}
	hub := &mockBroadcaster{}
	return NewTaskService(tasks, projects, &mockUserRepo{}, hub), tasks, hub
}

func TestUpdateProgressReachingFullCompletesTask(t *testing.T) {
	assignee := uint(3)
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusInProgress, &assignee))

	err := svc.UpdateProgress(context.Background(), testUser(3, models.RoleTeamMember), 10, 100)
	require.NoError(t, err)

	assert.Equal(t, []int{100}, tasks.progressCalls)
	assert.Equal(t, []models.TaskStatus{models.TaskStatusCompleted}, tasks.statusCalls)

	// Exactly two broadcasts, progress first, then the forced completion
	require.Len(t, hub.calls, 2)
	assert.Equal(t, "progress", hub.calls[0].payload["type"])
	assert.Equal(t, "status", hub.calls[1].payload["type"])
	assert.Equal(t, models.TaskStatusCompleted, hub.calls[1].payload["status"])
}

func TestUpdateProgressAlreadyCompleted(t *testing.T) {
	assignee := uint(3)
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusCompleted, &assignee))

	err := svc.UpdateProgress(context.Background(), testUser(3, models.RoleTeamMember), 10, 100)
	require.NoError(t, err)

	assert.Empty(t, tasks.statusCalls, "no redundant status write")
	require.Len(t, hub.calls, 1)
	assert.Equal(t, "progress", hub.calls[0].payload["type"])
}

func TestUpdateProgressNeverRevertsCompletion(t *testing.T) {
	assignee := uint(3)
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusCompleted, &assignee))

	err := svc.UpdateProgress(context.Background(), testUser(3, models.RoleTeamMember), 10, 40)
	require.NoError(t, err)

	assert.Equal(t, []int{40}, tasks.progressCalls)
	assert.Empty(t, tasks.statusCalls)
	require.Len(t, hub.calls, 1)
}

func TestUpdateProgressRange(t *testing.T) {
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusInProgress, nil))
	user := testUser(1, models.RoleProjectManager)

	assert.ErrorIs(t, svc.UpdateProgress(context.Background(), user, 10, -1), ErrValidation)
	assert.ErrorIs(t, svc.UpdateProgress(context.Background(), user, 10, 101), ErrValidation)
	assert.Empty(t, tasks.progressCalls)
	assert.Empty(t, hub.calls)
}

func TestUpdateProgressDeniedWithoutBroadcast(t *testing.T) {
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusInProgress, nil))

	err := svc.UpdateProgress(context.Background(), testUser(4, models.RoleTeamMember), 10, 50)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, tasks.progressCalls, "denied update must not persist")
	assert.Empty(t, hub.calls, "denied update must not broadcast")
}

func TestUpdateStatusByAssignee(t *testing.T) {
	assignee := uint(3)
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusPending, &assignee))

	err := svc.UpdateStatus(context.Background(), testUser(3, models.RoleTeamMember), 10, models.TaskStatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, []models.TaskStatus{models.TaskStatusInProgress}, tasks.statusCalls)
	require.Len(t, hub.calls, 1)
	assert.Equal(t, "status", hub.calls[0].payload["type"])
}

func TestUpdateStatusDeniedForNonAssigneeMember(t *testing.T) {
	assignee := uint(2)
	svc, _, hub := newTaskFixture(testTask(models.TaskStatusPending, &assignee))

	err := svc.UpdateStatus(context.Background(), testUser(3, models.RoleTeamMember), 10, models.TaskStatusCompleted)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, hub.calls)
}

func TestCreateWithAssigneeNotifiesThem(t *testing.T) {
	svc, _, hub := newTaskFixture(nil)
	assignee := uint(3)

	task, err := svc.Create(context.Background(), testUser(1, models.RoleProjectManager), 1, TaskInput{
		Name:       "Build homepage",
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityHigh,
		AssignedTo: &assignee,
	})
	require.NoError(t, err)
	require.NotNil(t, task)

	require.Len(t, hub.calls, 2)
	assert.Equal(t, "task-update", hub.calls[0].method)
	assert.Equal(t, "create", hub.calls[0].payload["type"])
	assert.Equal(t, "task-assigned", hub.calls[1].method)
	assert.Equal(t, uint(3), hub.calls[1].userID)
}

func TestCreateDeniedForPlainMember(t *testing.T) {
	svc, _, hub := newTaskFixture(nil)

	_, err := svc.Create(context.Background(), testUser(3, models.RoleTeamMember), 1, TaskInput{
		Name:     "Sneaky task",
		Status:   models.TaskStatusPending,
		Priority: models.TaskPriorityLow,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, hub.calls)
}

func TestUpdateAssigneeChangeNotifiesNewAssignee(t *testing.T) {
	previous := uint(2)
	svc, _, hub := newTaskFixture(testTask(models.TaskStatusPending, &previous))
	next := uint(3)

	_, err := svc.Update(context.Background(), testUser(1, models.RoleProjectManager), 10, TaskInput{
		Name:       "Build homepage",
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityMedium,
		AssignedTo: &next,
	})
	require.NoError(t, err)

	require.Len(t, hub.calls, 2)
	assert.Equal(t, "task-assigned", hub.calls[1].method)
	assert.Equal(t, uint(3), hub.calls[1].userID)
}

func TestUpdateUnchangedAssigneeDoesNotRenotify(t *testing.T) {
	assignee := uint(3)
	svc, _, hub := newTaskFixture(testTask(models.TaskStatusPending, &assignee))
	same := uint(3)

	_, err := svc.Update(context.Background(), testUser(1, models.RoleProjectManager), 10, TaskInput{
		Name:       "Build homepage",
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityMedium,
		AssignedTo: &same,
	})
	require.NoError(t, err)

	require.Len(t, hub.calls, 1)
	assert.Equal(t, "task-update", hub.calls[0].method)
}

func TestDeleteBroadcasts(t *testing.T) {
	svc, tasks, hub := newTaskFixture(testTask(models.TaskStatusPending, nil))

	err := svc.Delete(context.Background(), testUser(1, models.RoleProjectManager), 10)
	require.NoError(t, err)

	assert.True(t, tasks.deleteCalled)
	require.Len(t, hub.calls, 1)
	assert.Equal(t, "delete", hub.calls[0].payload["type"])
	assert.Equal(t, uint(10), hub.calls[0].payload["taskId"])
}

func TestGetUnknownTask(t *testing.T) {
	svc, _, _ := newTaskFixture(nil)

	_, err := svc.Get(context.Background(), testUser(1, models.RoleProjectManager), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCommentBroadcastsThread(t *testing.T) {
	assignee := uint(3)
	svc, _, hub := newTaskFixture(testTask(models.TaskStatusPending, &assignee))
	author := testUser(3, models.RoleTeamMember)
	author.Fullname = "Team Member"

	comment, err := svc.AddComment(context.Background(), author, 10, "looks good")
	require.NoError(t, err)
	require.NotNil(t, comment)

	require.Len(t, hub.calls, 1)
	assert.Equal(t, "new-comment", hub.calls[0].method)
	assert.Equal(t, "looks good", hub.calls[0].payload["content"])
	assert.Equal(t, "Team Member", hub.calls[0].payload["fullname"])
}

func TestAddCommentDeniedForOutsider(t *testing.T) {
	svc, _, hub := newTaskFixture(testTask(models.TaskStatusPending, nil))

	_, err := svc.AddComment(context.Background(), testUser(4, models.RoleTeamMember), 10, "let me in")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, hub.calls)
}

func TestAddCommentEmptyContent(t *testing.T) {
	svc, _, _ := newTaskFixture(testTask(models.TaskStatusPending, nil))

	_, err := svc.AddComment(context.Background(), testUser(1, models.RoleProjectManager), 10, "")
	assert.ErrorIs(t, err, ErrValidation)
}
