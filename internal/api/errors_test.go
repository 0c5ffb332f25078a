package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmcphee/tasktrack/internal/domain"
	"github.com/dmcphee/tasktrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "task not found",
			err:      store.ErrTaskNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("lookup: %w", store.ErrNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "domain validation error",
			err:      domain.ErrTaskTitleEmpty,
			expected: http.StatusBadRequest,
		},
		{
			name:     "invalid entity",
			err:      store.ErrInvalidEntity,
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown error",
			err:      errors.New("connection refused"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestDomainFieldErrors(t *testing.T) {
	fields := DomainFieldErrors(domain.ErrTaskTitleEmpty)
	require.Len(t, fields, 1)
	assert.Equal(t, "title", fields[0].Field)

	fields = DomainFieldErrors(fmt.Errorf("merged: %w", domain.ErrTaskDescriptionEmpty))
	require.Len(t, fields, 1)
	assert.Equal(t, "description", fields[0].Field)

	fields = DomainFieldErrors(errors.New("something else"))
	require.Len(t, fields, 1)
	assert.Empty(t, fields[0].Field)
}

func TestTypeFieldError(t *testing.T) {
	var req CreateTaskRequest
	err := json.Unmarshal([]byte(`{"title":"t","description":"d","status":"yes"}`), &req)
	require.Error(t, err)

	fields, ok := TypeFieldError(err)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "status", fields[0].Field)
	assert.Contains(t, fields[0].Message, "bool")

	_, ok = TypeFieldError(errors.New("not a type error"))
	assert.False(t, ok)
}

func TestValidationFieldErrors(t *testing.T) {
	// Exercised through the real validator in task handler tests; here we
	// only check the fallback for non-validator errors.
	fields := ValidationFieldErrors(errors.New("boom"))
	require.Len(t, fields, 1)
	assert.Equal(t, "invalid request payload", fields[0].Message)
}
