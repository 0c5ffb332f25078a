// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmcphee/tasktrack/internal/domain"
	"github.com/dmcphee/tasktrack/internal/platform/logger"
	"github.com/dmcphee/tasktrack/internal/store"
)

// nextTaskIDQuery atomically reads-and-increments the persistent task ID
// counter. The single-row UPDATE is atomic at the storage layer, so
// concurrent creates can never observe the same value and IDs are strictly
// increasing. Deleting a task never winds the counter back.
const nextTaskIDQuery = `
	UPDATE task_id_counter
	SET value = value + 1
	WHERE id = 1
	RETURNING value
`

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection that should be initialized
// and managed by the caller. If logger is nil, a default logger is used.
func NewTaskStore(db *sql.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// listQuery builds the SELECT statement for List based on the filter.
func listQuery(filter store.TaskFilter) (string, []any) {
	query := `
		SELECT id, title, description, status, created_at
		FROM tasks
	`
	var args []any

	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}

	return query, args
}

// List implements store.TaskStore.List
// It returns all tasks, optionally restricted to the given status, in the
// table's natural order.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return getTaskByID(ctx, s.db, id, false)
}

// taskSelectQuery builds the single-row SELECT for a task. With forUpdate
// set the row is locked for the remainder of the enclosing transaction.
func taskSelectQuery(forUpdate bool) string {
	query := `
		SELECT id, title, description, status, created_at
		FROM tasks
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return query
}

// getTaskByID fetches a single task. It takes a DBTX so it serves both the
// plain read path against the pool and the locking read inside the update
// transaction.
func getTaskByID(ctx context.Context, q store.DBTX, id int64, forUpdate bool) (*domain.Task, error) {
	var task domain.Task
	err := q.QueryRowContext(ctx, taskSelectQuery(forUpdate), id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return &task, nil
}

// Create implements store.TaskStore.Create
// It assigns the next counter value as the task's ID and persists the task,
// both inside a single transaction so a failed insert never consumes an ID
// that a later create could observe as a gap before its own.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.NewStoreError("task", "create", "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.QueryRowContext(ctx, nextTaskIDQuery).Scan(&id); err != nil {
		log.Error("failed to advance task ID counter", slog.String("error", err.Error()))
		return MapError(err)
	}

	insert := `
		INSERT INTO tasks (id, title, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(
		ctx,
		insert,
		id,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt,
	); err != nil {
		log.Error("failed to insert task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return store.NewStoreError("task", "create", "commit transaction", err)
	}

	task.ID = id

	log.Info("task created",
		slog.Int64("task_id", id),
		slog.Bool("status", task.Status))
	return nil
}

// Update implements store.TaskStore.Update
// It locks the current row, merges the patch onto it in memory, re-validates
// the merged task against the full schema, and persists the result. The ID
// and creation timestamp are never modified.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.NewStoreError("task", "update", "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	task, err := getTaskByID(ctx, tx, id, true)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
		}
		return nil, err
	}

	patch.Apply(task)

	if err := task.Validate(); err != nil {
		log.Warn("merged task failed validation during update",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	update := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3
		WHERE id = $4
	`
	if _, err := tx.ExecContext(
		ctx,
		update,
		task.Title,
		task.Description,
		task.Status,
		task.ID,
	); err != nil {
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.NewStoreError("task", "update", "commit transaction", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// It permanently removes the task; the ID counter is not decremented, so
// deleted IDs are never reused.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
