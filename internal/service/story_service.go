package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// defaultStoryPageSize bounds story listings when the caller does not ask
// for a specific limit.
const defaultStoryPageSize = 20

// StoryService exposes the stories written by the story consumer.
type StoryService struct {
	stories store.StoryStore
	logger  *slog.Logger
}

// NewStoryService creates a new StoryService.
// It returns an error if the store is nil.
func NewStoryService(stories store.StoryStore, logger *slog.Logger) (*StoryService, error) {
	if stories == nil {
		return nil, newError("create_service", "stories store cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StoryService{
		stories: stories,
		logger:  logger.With("component", "story_service"),
	}, nil
}

// ListStories returns the most recent stories for a user, newest first.
func (s *StoryService) ListStories(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Story, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultStoryPageSize
	}

	stories, err := s.stories.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, newError("list_stories", "failed to list stories", err)
	}

	return stories, nil
}
