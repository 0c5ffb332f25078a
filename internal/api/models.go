package api

import (
	"time"

	"github.com/dmcphee/tasktrack/internal/domain"
)

// CreateTaskRequest defines the payload for the task creation endpoint.
// Status is optional and defaults to false (incomplete) when omitted.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      *bool  `json:"status"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// All fields are optional; omitted fields keep their persisted values.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *bool   `json:"status"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       bool      `json:"status"`
	CreationDate time.Time `json:"creationDate"`
}

// MessageResponse is the body for plain confirmation responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// taskToResponse transforms a domain task into its wire representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		CreationDate: task.CreatedAt,
	}
}
