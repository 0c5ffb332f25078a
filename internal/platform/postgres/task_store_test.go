package postgres

import (
	"context"
	"database/sql"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmcphee/tasktrack/internal/domain"
	"github.com/dmcphee/tasktrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// newTestDB opens the database named by DATABASE_URL and resets the task
// schema. Tests calling it are skipped when the variable is not set.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test - DATABASE_URL environment variable required")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx), "Failed to ping database")

	schema := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id          BIGINT PRIMARY KEY,
			title       TEXT NOT NULL CHECK (title <> ''),
			description TEXT NOT NULL CHECK (description <> ''),
			status      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS task_id_counter (
			id    SMALLINT PRIMARY KEY CHECK (id = 1),
			value BIGINT NOT NULL
		)`,
		`INSERT INTO task_id_counter (id, value) VALUES (1, 0)
			ON CONFLICT (id) DO NOTHING`,
		`TRUNCATE tasks`,
		`UPDATE task_id_counter SET value = 0 WHERE id = 1`,
	}
	for _, stmt := range schema {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "Failed to prepare test schema")
	}

	return db
}

// Integration tests for the PostgreSQL TaskStore.
func TestTaskStoreIntegration(t *testing.T) {
	db := newTestDB(t)
	taskStore := NewTaskStore(db, nil)
	ctx := context.Background()

	t.Run("concurrent creates assign unique increasing IDs", func(t *testing.T) {
		const workers = 20

		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				task, err := domain.NewTask("concurrent", "created in parallel", false)
				if !assert.NoError(t, err) {
					return
				}
				if assert.NoError(t, taskStore.Create(ctx, task)) {
					ids <- task.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		got := make([]int64, 0, workers)
		for id := range ids {
			got = append(got, id)
		}
		require.Len(t, got, workers)

		sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i], "counter must never hand out the same ID twice")
		}
	})

	t.Run("create then get round-trips the task", func(t *testing.T) {
		task, err := domain.NewTask("groceries", "milk and eggs", false)
		require.NoError(t, err)
		require.NoError(t, taskStore.Create(ctx, task))
		require.NotZero(t, task.ID)

		found, err := taskStore.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, found.ID)
		assert.Equal(t, "groceries", found.Title)
		assert.Equal(t, "milk and eggs", found.Description)
		assert.False(t, found.Status)
		// timestamptz stores microseconds, so allow that much drift.
		assert.WithinDuration(t, task.CreatedAt, found.CreatedAt, time.Microsecond)
	})

	t.Run("update merges the patch and persists it", func(t *testing.T) {
		task, err := domain.NewTask("draft", "initial text", false)
		require.NoError(t, err)
		require.NoError(t, taskStore.Create(ctx, task))

		status := true
		updated, err := taskStore.Update(ctx, task.ID, domain.TaskPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "draft", updated.Title)
		assert.Equal(t, "initial text", updated.Description)
		assert.True(t, updated.Status)

		found, err := taskStore.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, found.Status)
	})

	t.Run("update rolls back when the merged task is invalid", func(t *testing.T) {
		task, err := domain.NewTask("valid", "still valid", false)
		require.NoError(t, err)
		require.NoError(t, taskStore.Create(ctx, task))

		empty := ""
		_, err = taskStore.Update(ctx, task.ID, domain.TaskPatch{Title: &empty})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)

		found, err := taskStore.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "valid", found.Title)
	})

	t.Run("update missing task returns not found", func(t *testing.T) {
		status := true
		_, err := taskStore.Update(ctx, 999999, domain.TaskPatch{Status: &status})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("delete never reuses the ID", func(t *testing.T) {
		first, err := domain.NewTask("doomed", "will be deleted", false)
		require.NoError(t, err)
		require.NoError(t, taskStore.Create(ctx, first))
		require.NoError(t, taskStore.Delete(ctx, first.ID))

		_, err = taskStore.GetByID(ctx, first.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		second, err := domain.NewTask("successor", "gets a fresh ID", false)
		require.NoError(t, err)
		require.NoError(t, taskStore.Create(ctx, second))
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("delete missing task returns not found", func(t *testing.T) {
		err := taskStore.Delete(ctx, 999999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
