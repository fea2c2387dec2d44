package tests

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, userID, taskID string) (string, error) {
	args := m.Called(ctx, userID, taskID)
	return args.String(0), args.Error(1)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *authServiceMock) Profile(ctx context.Context, userID string) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

// asUser stands in for middleware.Authenticate.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, domain.User{ID: id, Name: "Alice", Email: "alice@example.com"})
		c.Next()
	}
}
