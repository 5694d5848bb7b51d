package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
)

// GoalStore defines the interface for goal data persistence.
type GoalStore interface {
	// Create saves a new goal to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, goal *domain.Goal) error

	// GetByID retrieves a goal by its unique ID.
	// Returns ErrGoalNotFound if the goal does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// UpdateProgress sets the goal's derived progress percentage.
	// The write is an absolute set, so recomputing the same percentage
	// twice leaves the goal unchanged.
	// Returns ErrGoalNotFound if the goal does not exist.
	UpdateProgress(ctx context.Context, id uuid.UUID, percent int) error

	// WithTx returns a new GoalStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GoalStore
}
