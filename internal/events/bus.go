package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultConsumerTimeout bounds each consumer's execution when no
// timeout is configured or supplied per call.
const DefaultConsumerTimeout = 10 * time.Second

// subscription pairs a registered consumer with its unique-per-kind name.
type subscription struct {
	name     string
	consumer Consumer
}

// Bus maintains the kind-to-subscribers registry and is the sole entry
// point for fan-out. Registration is expected during process
// initialization; the registry is read-mostly afterwards and safe for
// concurrent Publish calls, which never serialize against each other.
type Bus struct {
	mu       sync.RWMutex
	subs     map[Kind][]subscription
	disabled map[Kind]bool

	timeout     time.Duration
	logger      *slog.Logger
	coordinator *coordinator
}

// BusOption customizes Bus construction.
type BusOption func(*Bus)

// WithConsumerTimeout sets the default per-consumer timeout applied to
// every dispatch unless overridden per publish call.
func WithConsumerTimeout(d time.Duration) BusOption {
	return func(b *Bus) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithDisabledKinds disables publishing for the given kinds. Publishing
// a disabled kind is a no-op that returns an empty report.
func WithDisabledKinds(kinds ...Kind) BusOption {
	return func(b *Bus) {
		for _, kind := range kinds {
			b.disabled[kind] = true
		}
	}
}

// WithMetrics attaches a metrics recorder observed on every dispatch.
func WithMetrics(rec Recorder) BusOption {
	return func(b *Bus) {
		if rec != nil {
			b.coordinator.metrics = rec
		}
	}
}

// NewBus creates an event bus with no subscriptions. The bus is an
// explicit instance handed to the producer and to test harnesses rather
// than process-global state, so tests get isolated registries.
func NewBus(logger *slog.Logger, opts ...BusOption) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "event_bus")

	bus := &Bus{
		subs:     make(map[Kind][]subscription),
		disabled: make(map[Kind]bool),
		timeout:  DefaultConsumerTimeout,
		logger:   logger,
		coordinator: &coordinator{
			logger:  logger,
			metrics: noopRecorder{},
		},
	}

	for _, opt := range opts {
		opt(bus)
	}

	return bus
}

// Subscribe registers a named consumer for an event kind. Names must be
// unique per kind; registering a duplicate returns a
// DuplicateSubscriberError. Subscription order determines the order of
// result entries in every DispatchReport for that kind.
func (b *Bus) Subscribe(kind Kind, name string, consumer Consumer) error {
	if name == "" {
		return ErrSubscriberNameEmpty
	}
	if consumer == nil {
		return ErrNilConsumer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[kind] {
		if sub.name == name {
			return &DuplicateSubscriberError{Kind: kind, Name: name}
		}
	}

	b.subs[kind] = append(b.subs[kind], subscription{name: name, consumer: consumer})
	b.logger.Debug("registered subscriber",
		"kind", string(kind),
		"name", name,
		"subscriber_count", len(b.subs[kind]))
	return nil
}

// PublishOption customizes a single Publish call.
type PublishOption func(*publishOptions)

type publishOptions struct {
	timeout time.Duration
}

// WithTimeout overrides the per-consumer timeout for this publish call.
// Mainly used by tests that need tight timing bounds.
func WithTimeout(d time.Duration) PublishOption {
	return func(o *publishOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Publish fans the event out to every subscriber registered for its
// kind, concurrently, and blocks until each has succeeded, failed, or
// timed out. It never returns an error: partial failure is reported in
// the DispatchReport and is the producer's concern to act on, or not.
// A kind with no subscribers yields an empty report.
func (b *Bus) Publish(ctx context.Context, event Event, opts ...PublishOption) DispatchReport {
	options := publishOptions{timeout: b.timeout}
	for _, opt := range opts {
		opt(&options)
	}

	if b.disabled[event.Kind] {
		b.logger.Debug("publishing disabled for kind, skipping dispatch",
			"kind", string(event.Kind),
			"correlation_id", event.CorrelationID)
		return DispatchReport{
			CorrelationID: event.CorrelationID,
			Kind:          event.Kind,
			Results:       []ConsumerResult{},
		}
	}

	// Snapshot under the read lock so a (misbehaving) concurrent
	// Subscribe cannot disturb an in-flight dispatch.
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[event.Kind]))
	copy(subs, b.subs[event.Kind])
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Debug("no subscribers registered for kind",
			"kind", string(event.Kind),
			"correlation_id", event.CorrelationID)
		return DispatchReport{
			CorrelationID: event.CorrelationID,
			Kind:          event.Kind,
			Results:       []ConsumerResult{},
		}
	}

	return b.coordinator.dispatch(ctx, event, subs, options.timeout)
}
