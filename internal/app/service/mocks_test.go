package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) FindOwned(ctx context.Context, taskID, ownerID string) (domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Create(ctx context.Context, task domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *taskRepositoryMock) UpdateOwned(ctx context.Context, taskID, ownerID string, patch domain.TaskPatch) (domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) DeleteOwned(ctx context.Context, taskID, ownerID string) error {
	return m.Called(ctx, taskID, ownerID).Error(0)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) Create(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepositoryMock) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

// plainHasher prefixes the password so hashes stay readable in assertions.
type plainHasher struct {
	verified []string
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *plainHasher) Verify(password, hash string) bool {
	h.verified = append(h.verified, hash)
	return hash == "hashed:"+password
}

type tokenManagerMock struct {
	mock.Mock
}

func (m *tokenManagerMock) Issue(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *tokenManagerMock) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
