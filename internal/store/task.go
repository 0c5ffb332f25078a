package store

import (
	"context"

	"github.com/dmcphee/tasktrack/internal/domain"
)

// TaskFilter restricts the tasks returned by List. A nil Status means no
// status filtering.
type TaskFilter struct {
	Status *bool
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List returns all tasks matching the filter, in the store's natural
	// order. An empty result is a nil-safe empty slice, not an error.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create persists a new task and assigns it the next sequential ID from
	// the store's atomic counter. IDs are strictly increasing and never
	// reused, even under concurrent creates or after deletes. The assigned
	// ID is written back to the given task.
	// Returns validation errors if the task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies the given patch to the task with the given ID. The
	// patch is merged onto the persisted task and the merged result is
	// re-validated before being written; the ID and creation timestamp are
	// never modified. Returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist, or a validation
	// error if the merged task violates the schema.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete permanently removes the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
