package ports

import (
	"context"

	"taskmanager/internal/core/domain"
)

// TaskRepository scopes every lookup by owner. A task that exists but belongs
// to someone else is reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	FindOwned(ctx context.Context, taskID, ownerID string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) error
	UpdateOwned(ctx context.Context, taskID, ownerID string, patch domain.TaskPatch) (domain.Task, error)
	DeleteOwned(ctx context.Context, taskID, ownerID string) error
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (domain.Task, error)
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) (string, error)
}
