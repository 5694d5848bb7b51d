package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
)

// GoalTaskCounts holds the per-goal task totals used to derive goal progress.
type GoalTaskCounts struct {
	Total     int
	Completed int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateStatus updates the status and completion timestamp of an
	// existing task. Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, task *domain.Task) error

	// CountByGoal returns the total and completed task counts for a goal.
	// A goal with no tasks yields zero counts, not an error.
	CountByGoal(ctx context.Context, goalID uuid.UUID) (GoalTaskCounts, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
