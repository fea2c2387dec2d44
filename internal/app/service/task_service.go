package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
	newID          func() string
}

type TaskServiceOption func(*TaskService)

// WithTaskClock overrides the time source used for task timestamps.
func WithTaskClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(taskRepository ports.TaskRepository, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{
		taskRepository: taskRepository,
		now:            time.Now,
		newID:          newTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.taskRepository.ListByOwner(ctx, userID)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	return s.taskRepository.FindOwned(ctx, taskID, userID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return domain.Task{}, domain.ErrTaskFieldsRequired
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !status.Valid() {
		return domain.Task{}, domain.ErrInvalidTaskStatus
	}

	now := s.timestamp()
	task := domain.Task{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.taskRepository.Create(ctx, task); err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

// UpdateTask overwrites only the provided fields. Blank values count as not
// provided, so a title or description can never be cleared.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	var patch domain.TaskPatch

	if input.Title != nil {
		if value := strings.TrimSpace(*input.Title); value != "" {
			patch.Title = &value
		}
	}
	if input.Description != nil {
		if value := strings.TrimSpace(*input.Description); value != "" {
			patch.Description = &value
		}
	}
	if input.Status != nil && *input.Status != "" {
		if !input.Status.Valid() {
			return domain.Task{}, domain.ErrInvalidTaskStatus
		}
		value := *input.Status
		patch.Status = &value
	}
	patch.UpdatedAt = s.timestamp()

	return s.taskRepository.UpdateOwned(ctx, taskID, userID, patch)
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) (string, error) {
	if err := s.taskRepository.DeleteOwned(ctx, taskID, userID); err != nil {
		return "", err
	}
	return taskID, nil
}

// newTaskID returns a time-ordered id. Tasks created within the same
// millisecond share created_at, and the id breaks the tie in creation order.
func newTaskID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// timestamp is truncated to what every supported store can round-trip.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

var _ ports.TaskService = (*TaskService)(nil)
