package service

import (
	"context"
	"testing"

	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockAccountRepo struct {
	repository.UserRepository
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
	byID       map[uint]*models.User
	created    []*models.User
	updated    []*models.User
	deleted    []uint
}

func newMockAccountRepo(users ...*models.User) *mockAccountRepo {
	m := &mockAccountRepo{
		byUsername: make(map[string]*models.User),
		byEmail:    make(map[string]*models.User),
		byID:       make(map[uint]*models.User),
	}
	for _, u := range users {
		m.byUsername[u.Username] = u
		m.byEmail[u.Email] = u
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockAccountRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uint(len(m.byID) + 100)
	m.created = append(m.created, user)
	return nil
}

func (m *mockAccountRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = append(m.updated, user)
	return nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func account(id uint, username, email string, role models.UserRole) *models.User {
	u := &models.User{Username: username, Email: email, Role: role}
	u.ID = id
	return u
}

func TestCreateUserConflicts(t *testing.T) {
	repo := newMockAccountRepo(account(1, "admin", "admin@example.com", models.RoleAdmin))
	svc := NewUserService(repo, &mockProjectRepo{})

	_, err := svc.Create(context.Background(), UserInput{
		Username: "admin", Password: "secret1", Fullname: "A", Email: "new@example.com", Role: models.RoleTeamMember,
	})
	assert.ErrorIs(t, err, ErrConflict, "duplicate username")

	_, err = svc.Create(context.Background(), UserInput{
		Username: "fresh", Password: "secret1", Fullname: "A", Email: "admin@example.com", Role: models.RoleTeamMember,
	})
	assert.ErrorIs(t, err, ErrConflict, "duplicate email")

	user, err := svc.Create(context.Background(), UserInput{
		Username: "fresh", Password: "secret1", Fullname: "A", Email: "new@example.com", Role: models.RoleTeamMember,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestCreateUserInvalidRole(t *testing.T) {
	svc := NewUserService(newMockAccountRepo(), &mockProjectRepo{})

	_, err := svc.Create(context.Background(), UserInput{
		Username: "x", Password: "secret1", Email: "x@example.com", Role: models.UserRole("superuser"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteUserCannotDeleteSelf(t *testing.T) {
	admin := account(1, "admin", "admin@example.com", models.RoleAdmin)
	repo := newMockAccountRepo(admin, account(2, "pm", "pm@example.com", models.RoleProjectManager))
	svc := NewUserService(repo, &mockProjectRepo{})

	err := svc.Delete(context.Background(), admin, 1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, repo.deleted)

	err = svc.Delete(context.Background(), admin, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, repo.deleted)
}

func TestDeleteUnknownUser(t *testing.T) {
	admin := account(1, "admin", "admin@example.com", models.RoleAdmin)
	svc := NewUserService(newMockAccountRepo(admin), &mockProjectRepo{})

	err := svc.Delete(context.Background(), admin, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := account(1, "pm", "pm@example.com", models.RoleProjectManager)
	user.PasswordHash = string(hash)

	repo := newMockAccountRepo(user)
	svc := NewUserService(repo, &mockProjectRepo{})

	err = svc.ChangePassword(context.Background(), user, "wrongpass", "newpass1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, repo.updated)

	err = svc.ChangePassword(context.Background(), user, "oldpass", "newpass1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass1")))
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	me := account(1, "pm", "pm@example.com", models.RoleProjectManager)
	other := account(2, "member", "member@example.com", models.RoleTeamMember)
	repo := newMockAccountRepo(me, other)
	svc := NewUserService(repo, &mockProjectRepo{})

	_, err := svc.UpdateProfile(context.Background(), me, "New Name", "member@example.com", "")
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := svc.UpdateProfile(context.Background(), me, "New Name", "pm@example.com", "avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Fullname)
	assert.Equal(t, "avatar.png", updated.Avatar)
}
