package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const (
	taskColumns = `id, user_id, title, description, status, created_at, updated_at`

	listTasksByOwnerQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = ?
ORDER BY created_at DESC, id DESC;
`

	findOwnedTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = ? AND user_id = ?;
`

	insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?);
`

	deleteOwnedTaskQuery = `DELETE FROM tasks WHERE id = ? AND user_id = ?;`
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksByOwnerQuery, ownerID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) FindOwned(ctx context.Context, taskID, ownerID string) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, findOwnedTaskQuery, taskID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	_, err := r.db.ExecContext(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	)
	return err
}

// UpdateOwned applies the patch and reads the row back in one transaction, so
// the returned task is the one that was written.
func (r *TaskRepository) UpdateOwned(ctx context.Context, taskID, ownerID string, patch domain.TaskPatch) (domain.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []any{patch.UpdatedAt}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	args = append(args, taskID, ownerID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?;"
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return domain.Task{}, err
	}

	// Existence is decided by the read-back. MySQL reports changed rows rather
	// than matched rows unless clientFoundRows is set, so a no-op update can
	// affect zero rows.
	var row taskRow
	if err := tx.GetContext(ctx, &row, findOwnedTaskQuery, taskID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, taskID, ownerID string) error {
	result, err := r.db.ExecContext(ctx, deleteOwnedTaskQuery, taskID, ownerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	return domain.Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
