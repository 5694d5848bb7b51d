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

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, user_id, goal_id, title, notes, status, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		nullableUUID(task.GoalID),
		task.Title,
		task.Notes,
		task.Status,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to insert task",
			"task_id", task.ID,
			"error", err)
		return mapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT id, user_id, goal_id, title, notes, status, completed_at, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	var goalID uuid.NullUUID
	var completedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.UserID,
		&goalID,
		&task.Title,
		&task.Notes,
		&task.Status,
		&completedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTaskNotFound
		}
		s.logger.ErrorContext(ctx, "failed to query task",
			"task_id", id,
			"error", err)
		return nil, mapError(err)
	}

	if goalID.Valid {
		task.GoalID = goalID.UUID
	}
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}

	return &task, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *TaskStore) UpdateStatus(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Status,
		task.CompletedAt,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update task status",
			"task_id", task.ID,
			"status", task.Status,
			"error", err)
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// CountByGoal implements store.TaskStore.CountByGoal
func (s *TaskStore) CountByGoal(ctx context.Context, goalID uuid.UUID) (store.GoalTaskCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $2)
		FROM tasks
		WHERE goal_id = $1
	`

	var counts store.GoalTaskCounts
	err := s.db.QueryRowContext(ctx, query, goalID, domain.TaskStatusCompleted).
		Scan(&counts.Total, &counts.Completed)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count tasks for goal",
			"goal_id", goalID,
			"error", err)
		return store.GoalTaskCounts{}, mapError(err)
	}

	return counts, nil
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableUUID converts uuid.Nil into a SQL NULL so optional foreign keys
// are stored as NULL rather than the zero UUID.
func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
