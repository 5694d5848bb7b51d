package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// StoryStore implements the store.StoryStore interface
// using a PostgreSQL database as the storage backend.
//
// The stories table carries a unique index on correlation_id. Create maps
// the resulting unique violation to store.ErrStoryExists, which is what
// makes story composition safe to replay.
type StoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStoryStore creates a new PostgreSQL implementation of the StoryStore
// interface. If logger is nil, the default logger is used.
func NewStoryStore(db store.DBTX, logger *slog.Logger) *StoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "story_store")),
	}
}

// Ensure StoryStore implements store.StoryStore interface
var _ store.StoryStore = (*StoryStore)(nil)

// Create implements store.StoryStore.Create
func (s *StoryStore) Create(ctx context.Context, story *domain.Story) error {
	if err := story.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO stories (id, user_id, task_id, correlation_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		story.ID,
		story.UserID,
		story.TaskID,
		story.CorrelationID,
		story.Text,
		story.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrStoryExists
		}
		s.logger.ErrorContext(ctx, "failed to insert story",
			"story_id", story.ID,
			"correlation_id", story.CorrelationID,
			"error", err)
		return mapError(err)
	}

	return nil
}

// ListByUser implements store.StoryStore.ListByUser
func (s *StoryStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Story, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, task_id, correlation_id, text, created_at
		FROM stories
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to query stories",
			"user_id", userID,
			"error", err)
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var stories []*domain.Story
	for rows.Next() {
		var story domain.Story
		if err := rows.Scan(
			&story.ID,
			&story.UserID,
			&story.TaskID,
			&story.CorrelationID,
			&story.Text,
			&story.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}
		stories = append(stories, &story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story rows: %w", err)
	}

	return stories, nil
}

// WithTx implements store.StoryStore.WithTx
func (s *StoryStore) WithTx(tx *sql.Tx) store.StoryStore {
	return &StoryStore{
		db:     tx,
		logger: s.logger,
	}
}
