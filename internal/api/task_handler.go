package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/api/middleware"
	"github.com/stridehq/stride-api/internal/api/shared"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/service"
)

// TaskService defines the service surface the task handlers depend on.
type TaskService interface {
	CreateTask(ctx context.Context, userID, goalID uuid.UUID, title, notes string) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)
	GetTask(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)
}

// Ensure the concrete service satisfies the handler-facing interface
var _ TaskService = (*service.TaskService)(nil)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goalID := uuid.Nil
	if req.GoalID != "" {
		parsed, err := uuid.Parse(req.GoalID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
			return
		}
		goalID = parsed
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, goalID, req.Title, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// CompleteTask handles POST /api/tasks/{id}/complete requests.
//
// The completion is committed before the handler responds; consumer fan-out
// happens on the same request but its outcome never changes the response.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), taskID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}
