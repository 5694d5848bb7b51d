package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/store"
)

// Subscriber names under which the consumers register. Unique per event
// kind; these are the names that appear in dispatch reports and logs.
const (
	NameProgress     = "progress"
	NameStory        = "story"
	NameNotification = "notification"
	NameMemory       = "memory"
)

// ProgressRecalculator recomputes a goal's completion percentage when
// one of its tasks completes. The write is an absolute set of a derived
// value, so replaying the same event leaves the goal unchanged.
type ProgressRecalculator struct {
	tasks  store.TaskStore
	goals  store.GoalStore
	logger *slog.Logger
}

// NewProgressRecalculator creates the progress consumer.
func NewProgressRecalculator(tasks store.TaskStore, goals store.GoalStore, logger *slog.Logger) *ProgressRecalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressRecalculator{
		tasks:  tasks,
		goals:  goals,
		logger: logger.With("component", "progress_recalculator"),
	}
}

// Handle implements events.Consumer.
func (p *ProgressRecalculator) Handle(ctx context.Context, event events.Event) error {
	taskID, ok := event.EntityID()
	if !ok {
		return fmt.Errorf("event %s has no usable entity id", event.CorrelationID)
	}

	task, err := p.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", taskID, err)
	}

	if task.GoalID == uuid.Nil {
		p.logger.DebugContext(ctx, "task has no goal, nothing to recalculate",
			"task_id", taskID,
			"correlation_id", event.CorrelationID)
		return nil
	}

	counts, err := p.tasks.CountByGoal(ctx, task.GoalID)
	if err != nil {
		return fmt.Errorf("failed to count tasks for goal %s: %w", task.GoalID, err)
	}

	percent := domain.ProgressPercent(counts.Completed, counts.Total)
	if err := p.goals.UpdateProgress(ctx, task.GoalID, percent); err != nil {
		return fmt.Errorf("failed to update goal %s progress: %w", task.GoalID, err)
	}

	p.logger.InfoContext(ctx, "goal progress recalculated",
		"goal_id", task.GoalID,
		"progress", percent,
		"completed", counts.Completed,
		"total", counts.Total,
		"correlation_id", event.CorrelationID)
	return nil
}

var _ events.Consumer = (*ProgressRecalculator)(nil)
