package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/notify"
	"github.com/stridehq/stride-api/internal/store"
)

// NotificationDispatcher delivers a completion notification to the
// task's owner through the configured transport.
type NotificationDispatcher struct {
	tasks     store.TaskStore
	users     store.UserStore
	transport notify.Transport
	logger    *slog.Logger
}

// NewNotificationDispatcher creates the notification consumer.
func NewNotificationDispatcher(
	tasks store.TaskStore,
	users store.UserStore,
	transport notify.Transport,
	logger *slog.Logger,
) *NotificationDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationDispatcher{
		tasks:     tasks,
		users:     users,
		transport: transport,
		logger:    logger.With("component", "notification_dispatcher"),
	}
}

// Handle implements events.Consumer.
func (n *NotificationDispatcher) Handle(ctx context.Context, event events.Event) error {
	taskID, ok := event.EntityID()
	if !ok {
		return fmt.Errorf("event %s has no usable entity id", event.CorrelationID)
	}
	userID, ok := event.UserID()
	if !ok {
		return fmt.Errorf("event %s has no usable user id", event.CorrelationID)
	}

	task, err := n.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", taskID, err)
	}

	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	msg := notify.Message{
		Subject: fmt.Sprintf("Task complete: %s", task.Title),
		Body:    fmt.Sprintf("%s, you just finished %q. Keep the streak going.", user.DisplayName, task.Title),
	}

	if err := n.transport.Send(ctx, user.Email, msg); err != nil {
		return fmt.Errorf("failed to send notification via %s: %w", n.transport.Name(), err)
	}

	n.logger.InfoContext(ctx, "notification delivered",
		"task_id", taskID,
		"transport", n.transport.Name(),
		"correlation_id", event.CorrelationID)
	return nil
}

var _ events.Consumer = (*NotificationDispatcher)(nil)
