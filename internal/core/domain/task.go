package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
}

// UpdateTaskInput carries only the fields that should be overwritten. A nil
// field keeps its stored value.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// IsEmpty reports whether the input would change nothing but the update timestamp.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil
}

// TaskPatch is what a repository applies to an owned task.
type TaskPatch struct {
	UpdateTaskInput
	UpdatedAt time.Time
}
