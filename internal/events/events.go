package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind identifies what happened. It is a closed enumeration: consumers
// subscribe against these values and unknown kinds are never published.
type Kind string

// Event kinds emitted by the task lifecycle.
const (
	// KindTaskCompleted is published after a task's completion has been
	// durably committed.
	KindTaskCompleted Kind = "task.completed"

	// KindGoalCompleted is published after a goal reaches 100% progress.
	KindGoalCompleted Kind = "goal.completed"
)

// Payload keys every event must carry.
const (
	// PayloadEntityID is the identifier of the subject entity.
	PayloadEntityID = "entity_id"

	// PayloadUserID is the identifier of the owning user.
	PayloadUserID = "user_id"
)

// Event represents a single domain occurrence handed to the bus.
// Events are immutable once constructed: consumers must not modify the
// payload, and the bus never does. They are not persisted; delivery is
// in-process only.
type Event struct {
	// Kind indicates what happened.
	Kind Kind `json:"kind"`

	// Payload carries the event data. It always contains PayloadEntityID
	// and PayloadUserID.
	Payload map[string]any `json:"payload"`

	// OccurredAt is the timestamp when the event was created.
	OccurredAt time.Time `json:"occurred_at"`

	// CorrelationID threads one logical event through every consumer
	// invocation and log line for traceability. It is generated once
	// per producer call.
	CorrelationID string `json:"correlation_id"`
}

// NewEvent creates an Event of the given kind for the given entity and
// owner, with a fresh correlation id. extra holds any additional payload
// entries; it may be nil.
func NewEvent(kind Kind, entityID, userID uuid.UUID, extra map[string]any) Event {
	payload := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		payload[k] = v
	}
	payload[PayloadEntityID] = entityID
	payload[PayloadUserID] = userID

	return Event{
		Kind:          kind,
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
		CorrelationID: uuid.New().String(),
	}
}

// EntityID extracts the subject entity identifier from the payload.
// The second return value is false when the payload is missing the key
// or holds a value of an unexpected type.
func (e Event) EntityID() (uuid.UUID, bool) {
	return payloadUUID(e.Payload, PayloadEntityID)
}

// UserID extracts the owning-user identifier from the payload.
func (e Event) UserID() (uuid.UUID, bool) {
	return payloadUUID(e.Payload, PayloadUserID)
}

func payloadUUID(payload map[string]any, key string) (uuid.UUID, bool) {
	switch v := payload[key].(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil && id != uuid.Nil
	default:
		return uuid.Nil, false
	}
}

// Consumer is the contract any downstream processor must satisfy.
// Implementations must honor ctx cancellation promptly, must not mutate
// the event payload, and should be idempotent with respect to the
// event's correlation id where practical: delivery is at-least-once
// within a process lifetime.
type Consumer interface {
	// Handle processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	Handle(ctx context.Context, event Event) error
}

// ConsumerFunc adapts a plain function to the Consumer interface.
type ConsumerFunc func(ctx context.Context, event Event) error

// Handle implements Consumer.
func (f ConsumerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}
