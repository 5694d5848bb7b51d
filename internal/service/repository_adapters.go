package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// NewTaskRepositoryAdapter creates an adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository interface
type taskRepositoryAdapter struct {
	taskStore store.TaskStore
	db        *sql.DB
}

// Create implements TaskRepository.Create
func (a *taskRepositoryAdapter) Create(ctx context.Context, task *domain.Task) error {
	return a.taskStore.Create(ctx, task)
}

// GetByID implements TaskRepository.GetByID
func (a *taskRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return a.taskStore.GetByID(ctx, id)
}

// UpdateStatus implements TaskRepository.UpdateStatus
func (a *taskRepositoryAdapter) UpdateStatus(ctx context.Context, task *domain.Task) error {
	return a.taskStore.UpdateStatus(ctx, task)
}

// WithTx implements TaskRepository.WithTx
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: a.taskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements TaskRepository.DB
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewGoalRepositoryAdapter creates an adapter that allows a store.GoalStore
// to be used where a GoalRepository is expected.
func NewGoalRepositoryAdapter(goalStore store.GoalStore, db *sql.DB) GoalRepository {
	return &goalRepositoryAdapter{
		goalStore: goalStore,
		db:        db,
	}
}

// goalRepositoryAdapter adapts a store.GoalStore to the GoalRepository interface
type goalRepositoryAdapter struct {
	goalStore store.GoalStore
	db        *sql.DB
}

// Create implements GoalRepository.Create
func (a *goalRepositoryAdapter) Create(ctx context.Context, goal *domain.Goal) error {
	return a.goalStore.Create(ctx, goal)
}

// GetByID implements GoalRepository.GetByID
func (a *goalRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	return a.goalStore.GetByID(ctx, id)
}

// WithTx implements GoalRepository.WithTx
func (a *goalRepositoryAdapter) WithTx(tx *sql.Tx) GoalRepository {
	return &goalRepositoryAdapter{
		goalStore: a.goalStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements GoalRepository.DB
func (a *goalRepositoryAdapter) DB() *sql.DB {
	return a.db
}
