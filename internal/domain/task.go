package domain

import (
	"fmt"
	"time"
)

// Task-specific validation errors. Each wraps ErrValidation so the API
// layer can map any of them to a 400 response with errors.Is.
var (
	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = fmt.Errorf("%w: task title cannot be empty", ErrValidation)

	// ErrTaskDescriptionEmpty is returned when a task's description is empty.
	ErrTaskDescriptionEmpty = fmt.Errorf("%w: task description cannot be empty", ErrValidation)
)

// Task represents a single unit of work tracked by the service.
// The ID is assigned by the store from an atomic counter and is never
// reused, even after the task is deleted. CreatedAt is set once at
// construction time and never mutated afterwards.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"creationDate"`
}

// NewTask creates a new Task with the given title, description, and
// completion status. The creation timestamp is set to the current UTC time
// and the ID is left at zero until the store assigns one.
// Returns an error if validation fails.
func NewTask(title, description string, status bool) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.Description == "" {
		return ErrTaskDescriptionEmpty
	}

	return nil
}

// TaskPatch describes a partial update to a Task. Nil fields are left
// unchanged. The ID and creation timestamp are never part of a patch.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *bool
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply merges the patch onto the given task in place. Only non-nil fields
// are written; ID and CreatedAt are untouched. The caller is expected to
// re-validate the merged task before persisting it.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
