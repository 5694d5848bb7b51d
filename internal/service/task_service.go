package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/store"
)

// Service-level sentinel errors for task operations.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrGoalNotFound indicates that the referenced goal does not exist.
	ErrGoalNotFound = errors.New("goal not found")
)

// TaskRepository defines the repository interface for the task service.
// It mirrors store.TaskStore and adds access to the underlying database
// for transaction control.
type TaskRepository interface {
	// Create saves a new task to the store
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateStatus updates the status and completion timestamp of a task
	UpdateStatus(ctx context.Context, task *domain.Task) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// EventPublisher is the slice of the event bus the producer needs.
type EventPublisher interface {
	// Publish fans the event out to its subscribers and reports the outcome.
	Publish(ctx context.Context, event events.Event, opts ...events.PublishOption) events.DispatchReport
}

// TaskService provides task lifecycle operations. Completing a task is the
// producer side of the dispatch mechanism: the status transition is
// committed durably first, and only then is the completion event published.
type TaskService struct {
	tasks     TaskRepository
	publisher EventPublisher
	logger    *slog.Logger
	runInTx   func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks TaskRepository,
	publisher EventPublisher,
	logger *slog.Logger,
) (*TaskService, error) {
	if tasks == nil {
		return nil, newError("create_service", "tasks repository cannot be nil", nil)
	}
	if publisher == nil {
		return nil, newError("create_service", "publisher cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		tasks:     tasks,
		publisher: publisher,
		logger:    logger.With("component", "task_service"),
		runInTx:   store.RunInTransaction,
	}, nil
}

// CreateTask creates a new pending task for the given user. goalID may be
// uuid.Nil for a free-standing task.
func (s *TaskService) CreateTask(
	ctx context.Context,
	userID, goalID uuid.UUID,
	title, notes string,
) (*domain.Task, error) {
	task, err := domain.NewTask(userID, goalID, title, notes)
	if err != nil {
		return nil, newError("create_task", "invalid task", err)
	}

	err = s.runInTx(ctx, s.tasks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, ErrGoalNotFound
		}
		return nil, newError("create_task", "failed to save task", err)
	}

	s.logger.InfoContext(ctx, "task created",
		"task_id", task.ID,
		"user_id", userID,
		"goal_id", task.GoalID)
	return task, nil
}

// CompleteTask transitions a task to the completed state and publishes the
// task-completed event.
//
// The status transition is committed before the event is published, so the
// completion survives regardless of what the consumers do. The dispatch
// report is logged and discarded; partial consumer failure never surfaces
// to the caller.
//
// Returns ErrTaskNotFound if the task does not exist, ErrNotOwned if it
// belongs to another user, and domain.ErrTaskAlreadyCompleted if it has
// already been completed.
func (s *TaskService) CompleteTask(
	ctx context.Context,
	taskID, userID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, newError("complete_task", "failed to load task", err)
	}

	if task.UserID != userID {
		return nil, ErrNotOwned
	}

	if err := task.MarkCompleted(); err != nil {
		return nil, err
	}

	err = s.runInTx(ctx, s.tasks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).UpdateStatus(ctx, task)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, newError("complete_task", "failed to commit completion", err)
	}

	// The write is durable from here on. Fan-out is informational only.
	event := events.NewEvent(events.KindTaskCompleted, task.ID, task.UserID, nil)
	report := s.publisher.Publish(ctx, event)

	s.logger.InfoContext(ctx, "task completed",
		"task_id", task.ID,
		"user_id", task.UserID,
		"correlation_id", report.CorrelationID,
		"consumers_succeeded", report.Succeeded,
		"consumers_total", report.Total)

	return task, nil
}

// GetTask retrieves a task by ID, enforcing ownership.
func (s *TaskService) GetTask(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, newError("get_task", "failed to load task", err)
	}

	if task.UserID != userID {
		return nil, ErrNotOwned
	}

	return task, nil
}
