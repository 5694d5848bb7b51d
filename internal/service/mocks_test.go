package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noTx replaces store.RunInTransaction in tests so fakes run without a
// database connection.
func noTx(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// fakeTaskRepo implements TaskRepository in memory.
type fakeTaskRepo struct {
	task      *domain.Task
	getErr    error
	createErr error
	updateErr error

	created []*domain.Task
	updates int
	steps   *[]string
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, task)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.task, nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, task *domain.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	if f.steps != nil {
		*f.steps = append(*f.steps, "commit")
	}
	return nil
}

func (f *fakeTaskRepo) WithTx(tx *sql.Tx) TaskRepository { return f }

func (f *fakeTaskRepo) DB() *sql.DB { return nil }

// fakeGoalRepo implements GoalRepository in memory.
type fakeGoalRepo struct {
	goal      *domain.Goal
	getErr    error
	createErr error
	created   []*domain.Goal
}

func (f *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, goal)
	return nil
}

func (f *fakeGoalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.goal, nil
}

func (f *fakeGoalRepo) WithTx(tx *sql.Tx) GoalRepository { return f }

func (f *fakeGoalRepo) DB() *sql.DB { return nil }

// fakePublisher records published events and returns a canned report.
type fakePublisher struct {
	published []events.Event
	report    events.DispatchReport
	steps     *[]string
}

func (f *fakePublisher) Publish(
	ctx context.Context,
	event events.Event,
	opts ...events.PublishOption,
) events.DispatchReport {
	f.published = append(f.published, event)
	if f.steps != nil {
		*f.steps = append(*f.steps, "publish")
	}
	report := f.report
	report.CorrelationID = event.CorrelationID
	report.Kind = event.Kind
	return report
}
