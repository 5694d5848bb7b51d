package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// GoalRepository defines the repository interface for the goal service.
type GoalRepository interface {
	// Create saves a new goal to the store
	Create(ctx context.Context, goal *domain.Goal) error

	// GetByID retrieves a goal by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) GoalRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// GoalService provides goal management operations. Goal progress itself is
// derived by the progress consumer, not set through this service.
type GoalService struct {
	goals   GoalRepository
	logger  *slog.Logger
	runInTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewGoalService creates a new GoalService.
// It returns an error if the repository is nil.
func NewGoalService(goals GoalRepository, logger *slog.Logger) (*GoalService, error) {
	if goals == nil {
		return nil, newError("create_service", "goals repository cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &GoalService{
		goals:   goals,
		logger:  logger.With("component", "goal_service"),
		runInTx: store.RunInTransaction,
	}, nil
}

// CreateGoal creates a new goal with zero progress for the given user.
func (s *GoalService) CreateGoal(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Goal, error) {
	goal, err := domain.NewGoal(userID, name, description)
	if err != nil {
		return nil, newError("create_goal", "invalid goal", err)
	}

	err = s.runInTx(ctx, s.goals.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.goals.WithTx(tx).Create(ctx, goal)
	})
	if err != nil {
		return nil, newError("create_goal", "failed to save goal", err)
	}

	s.logger.InfoContext(ctx, "goal created",
		"goal_id", goal.ID,
		"user_id", userID)
	return goal, nil
}

// GetGoal retrieves a goal by ID, enforcing ownership.
func (s *GoalService) GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrGoalNotFound
		}
		return nil, newError("get_goal", "failed to load goal", err)
	}

	if goal.UserID != userID {
		return nil, ErrNotOwned
	}

	return goal, nil
}
