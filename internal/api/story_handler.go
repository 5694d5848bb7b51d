package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/api/middleware"
	"github.com/stridehq/stride-api/internal/api/shared"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/service"
)

// StoryService defines the service surface the story handlers depend on.
type StoryService interface {
	ListStories(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Story, error)
}

// Ensure the concrete service satisfies the handler-facing interface
var _ StoryService = (*service.StoryService)(nil)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyService StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// ListStories handles GET /api/stories requests, returning the caller's
// most recent stories newest first. The optional "limit" query parameter
// bounds the page size.
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	stories, err := h.storyService.ListStories(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]StoryResponse, 0, len(stories))
	for _, story := range stories {
		responses = append(responses, storyToResponse(story))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
