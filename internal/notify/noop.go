package notify

import (
	"context"
	"log/slog"
)

// NoopTransport drops notifications on the floor, logging at debug
// level. Used when notifications are disabled in config so the
// notification consumer still runs and reports success.
type NoopTransport struct {
	logger *slog.Logger
}

// NewNoopTransport creates a transport that discards all messages.
func NewNoopTransport(logger *slog.Logger) *NoopTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopTransport{logger: logger.With("component", "noop_transport")}
}

// Name returns the transport identifier.
func (t *NoopTransport) Name() string { return "noop" }

// Send implements Transport by discarding the message.
func (t *NoopTransport) Send(ctx context.Context, to string, msg Message) error {
	t.logger.DebugContext(ctx, "notification discarded (transport disabled)",
		"to", to,
		"subject", msg.Subject)
	return nil
}

var _ Transport = (*NoopTransport)(nil)
