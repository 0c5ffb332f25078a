// Package mocks provides centralized mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/dmcphee/tasktrack/internal/domain"
	"github.com/dmcphee/tasktrack/internal/store"
)

// TaskStore implements store.TaskStore for testing.
//
// Function fields override individual methods; when a field is nil the mock
// falls back to a simple in-memory map keyed by task ID, with IDs assigned
// from an in-process counter.
type TaskStore struct {
	ListFn    func(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	CreateFn  func(ctx context.Context, task *domain.Task) error
	UpdateFn  func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, id int64) error

	mu     sync.Mutex
	Tasks  map[int64]*domain.Task
	nextID int64
}

// NewTaskStore creates a new mock store with initialized defaults.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		Tasks: make(map[int64]*domain.Task),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// List implements the TaskStore interface.
func (m *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// GetByID implements the TaskStore interface.
func (m *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// Create implements the TaskStore interface.
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Update implements the TaskStore interface.
func (m *TaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	merged := *task
	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	m.Tasks[id] = &merged
	copied := merged
	return &copied, nil
}

// Delete implements the TaskStore interface.
func (m *TaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}
