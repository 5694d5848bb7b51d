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

// GoalService defines the service surface the goal handlers depend on.
type GoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Goal, error)
	GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error)
}

// Ensure the concrete service satisfies the handler-facing interface
var _ GoalService = (*service.GoalService)(nil)

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalService GoalService
	validator   *validator.Validate
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validator:   validator.New(),
	}
}

// CreateGoal handles POST /api/goals requests
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, goalToResponse(goal))
}

// GetGoal handles GET /api/goals/{id} requests. The progress field reflects
// whatever the progress consumer has derived so far.
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	goal, err := h.goalService.GetGoal(r.Context(), goalID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goalToResponse(goal))
}
