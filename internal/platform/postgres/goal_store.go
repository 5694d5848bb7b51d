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

// GoalStore implements the store.GoalStore interface
// using a PostgreSQL database as the storage backend.
type GoalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewGoalStore creates a new PostgreSQL implementation of the GoalStore
// interface. If logger is nil, the default logger is used.
func NewGoalStore(db store.DBTX, logger *slog.Logger) *GoalStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &GoalStore{
		db:     db,
		logger: logger.With(slog.String("component", "goal_store")),
	}
}

// Ensure GoalStore implements store.GoalStore interface
var _ store.GoalStore = (*GoalStore)(nil)

// Create implements store.GoalStore.Create
func (s *GoalStore) Create(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO goals (id, user_id, name, description, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.Description,
		goal.Progress,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to insert goal",
			"goal_id", goal.ID,
			"error", err)
		return mapError(err)
	}

	return nil
}

// GetByID implements store.GoalStore.GetByID
func (s *GoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `
		SELECT id, user_id, name, description, progress, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var goal domain.Goal
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.Description,
		&goal.Progress,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrGoalNotFound
		}
		s.logger.ErrorContext(ctx, "failed to query goal",
			"goal_id", id,
			"error", err)
		return nil, mapError(err)
	}

	return &goal, nil
}

// UpdateProgress implements store.GoalStore.UpdateProgress
func (s *GoalStore) UpdateProgress(ctx context.Context, id uuid.UUID, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: progress %d is outside 0-100", store.ErrInvalidEntity, percent)
	}

	query := `
		UPDATE goals
		SET progress = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, percent, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update goal progress",
			"goal_id", id,
			"progress", percent,
			"error", err)
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrGoalNotFound)
}

// WithTx implements store.GoalStore.WithTx
func (s *GoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return &GoalStore{
		db:     tx,
		logger: s.logger,
	}
}
