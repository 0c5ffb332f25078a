// Package api provides HTTP handlers for the task API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmcphee/tasktrack/internal/api/shared"
	"github.com/dmcphee/tasktrack/internal/domain"
	"github.com/dmcphee/tasktrack/internal/platform/logger"
	"github.com/dmcphee/tasktrack/internal/store"
	"github.com/go-chi/chi/v5"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		panic("task store cannot be nil for TaskHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task endpoints on the given router.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})
}

// taskIDFromRequest extracts and parses the {id} path parameter.
func taskIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// statusFilterFromQuery derives the list filter from the status query
// parameter. The value is compared against the literal string "true"; any
// other non-empty value filters for incomplete tasks. This mirrors the
// original service's behavior and is intentional (see DESIGN.md).
func statusFilterFromQuery(r *http.Request) store.TaskFilter {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return store.TaskFilter{}
	}

	status := raw == "true"
	return store.TaskFilter{Status: &status}
}

// respondStoreError maps a store error onto the wire: 404s carry a message
// body, validation failures carry the structured per-field error list, and
// anything else is a 500 carrying the store error message.
func respondStoreError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := MapErrorToStatusCode(err)
	switch status {
	case http.StatusNotFound:
		shared.RespondWithError(w, r, status, "Task not found")
	case http.StatusBadRequest:
		shared.RespondWithValidationErrors(w, r, DomainFieldErrors(err))
	default:
		log.Error("store operation failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, status, err.Error())
	}
}

// ListTasks handles GET /tasks requests.
// It returns all tasks, optionally filtered by the status query parameter.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter := statusFilterFromQuery(r)

	tasks, err := h.store.List(r.Context(), filter)
	if err != nil {
		respondStoreError(w, r, log, err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, taskToResponse(&tasks[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, log, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks requests.
// The payload is validated before the store is touched; a failure produces
// a structured list of field-level errors, one entry per violated rule.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if fields, ok := TypeFieldError(err); ok {
			shared.RespondWithValidationErrors(w, r, fields)
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Debug("create task request failed validation", slog.String("error", err.Error()))
		shared.RespondWithValidationErrors(w, r, ValidationFieldErrors(err))
		return
	}

	status := false
	if req.Status != nil {
		status = *req.Status
	}

	task, err := domain.NewTask(req.Title, req.Description, status)
	if err != nil {
		shared.RespondWithValidationErrors(w, r, DomainFieldErrors(err))
		return
	}

	if err := h.store.Create(r.Context(), task); err != nil {
		respondStoreError(w, r, log, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests.
// Only fields present in the payload are changed; the store re-validates the
// merged document, so an update can still fail validation with a 400.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if fields, ok := TypeFieldError(err); ok {
			shared.RespondWithValidationErrors(w, r, fields)
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := req.Patch()

	// An empty payload changes nothing; return the current document without
	// opening a write transaction.
	if patch.IsZero() {
		task, err := h.store.GetByID(r.Context(), id)
		if err != nil {
			respondStoreError(w, r, log, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
		return
	}

	task, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		respondStoreError(w, r, log, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, log, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
