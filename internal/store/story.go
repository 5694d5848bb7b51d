package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
)

// StoryStore defines the interface for generated-story persistence.
type StoryStore interface {
	// Create saves a new story to the store.
	// Returns ErrStoryExists if a story with the same correlation id has
	// already been written, which makes story composition replay-safe.
	Create(ctx context.Context, story *domain.Story) error

	// ListByUser retrieves the most recent stories for a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Story, error)

	// WithTx returns a new StoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) StoryStore
}
