package db

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/core/domain"
)

var baseTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	require.NoError(t, Migrate(context.Background(), db))

	return db
}

func seedUser(t *testing.T, db *sqlx.DB, id, email string) domain.User {
	t.Helper()

	user := domain.User{
		ID:           id,
		Name:         "User " + id,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    baseTime,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func newTask(id, ownerID string, createdAt time.Time) domain.Task {
	return domain.Task{
		ID:          id,
		UserID:      ownerID,
		Title:       "Task " + id,
		Description: "Description " + id,
		Status:      domain.TaskStatusPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}
