package postgres

import (
	"testing"

	"github.com/dmcphee/tasktrack/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestNewTaskStoreRequiresDB(t *testing.T) {
	assert.Panics(t, func() {
		NewTaskStore(nil, nil)
	})
}

func TestTaskSelectQuery(t *testing.T) {
	t.Run("plain read does not lock", func(t *testing.T) {
		query := taskSelectQuery(false)
		assert.Contains(t, query, "WHERE id = $1")
		assert.NotContains(t, query, "FOR UPDATE")
	})

	t.Run("locking read appends FOR UPDATE", func(t *testing.T) {
		query := taskSelectQuery(true)
		assert.Contains(t, query, "WHERE id = $1")
		assert.Contains(t, query, "FOR UPDATE")
	})
}

func TestListQuery(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name       string
		filter     store.TaskFilter
		wantWhere  bool
		wantStatus bool
	}{
		{
			name:   "no filter selects everything",
			filter: store.TaskFilter{},
		},
		{
			name:       "status true filter",
			filter:     store.TaskFilter{Status: boolPtr(true)},
			wantWhere:  true,
			wantStatus: true,
		},
		{
			name:       "status false filter",
			filter:     store.TaskFilter{Status: boolPtr(false)},
			wantWhere:  true,
			wantStatus: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args := listQuery(tc.filter)

			assert.Contains(t, query, "FROM tasks")

			if !tc.wantWhere {
				assert.NotContains(t, query, "WHERE")
				assert.Empty(t, args)
				return
			}

			assert.Contains(t, query, "WHERE status = $1")
			assert.Equal(t, []any{tc.wantStatus}, args)
		})
	}
}
