package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   interface{}
	}{
		{
			name:   "successful response",
			status: http.StatusOK,
			data: map[string]interface{}{
				"message": "success",
				"data":    123,
			},
		},
		{
			name:   "created response",
			status: http.StatusCreated,
			data:   map[string]interface{}{"id": 1},
		},
		{
			name:   "nil response",
			status: http.StatusOK,
			data:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tc.data == nil {
				assert.Equal(t, "null\n", w.Body.String())
				return
			}

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
		})
	}
}

func TestRespondWithError(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/tasks/99", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Task not found", response.Message)
	assert.NotEmpty(t, response.TraceID)
}

func TestRespondWithValidationErrors(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "/tasks", nil)
	w := httptest.NewRecorder()

	RespondWithValidationErrors(w, req, []FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "description", Message: "description is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Errors, 2)
	assert.Equal(t, "title", response.Errors[0].Field)
	assert.Equal(t, "description", response.Errors[1].Field)
}

func TestTraceIDContext(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)

	// No trace ID attached yet.
	assert.Empty(t, GetTraceID(req.Context()))

	ctx := SetTraceID(req.Context())
	traceID := GetTraceID(ctx)
	assert.NotEmpty(t, traceID)

	// A second call generates a distinct ID.
	other := GetTraceID(SetTraceID(req.Context()))
	assert.NotEqual(t, traceID, other)
}
