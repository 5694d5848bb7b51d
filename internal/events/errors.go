package events

import (
	"errors"
	"fmt"
)

// Registration errors. These are startup errors: subscriptions happen
// during process initialization and a bad registration is fatal there,
// never recovered from at runtime.
var (
	// ErrSubscriberNameEmpty is returned when subscribing without a name.
	ErrSubscriberNameEmpty = errors.New("subscriber name cannot be empty")

	// ErrNilConsumer is returned when subscribing a nil consumer.
	ErrNilConsumer = errors.New("consumer cannot be nil")
)

// DuplicateSubscriberError is returned by Subscribe when a (kind, name)
// pair is already registered. Duplicate registration is an error, not a
// silent overwrite.
type DuplicateSubscriberError struct {
	Kind Kind
	Name string
}

// Error implements the error interface.
func (e *DuplicateSubscriberError) Error() string {
	return fmt.Sprintf("subscriber %q already registered for kind %q", e.Name, e.Kind)
}

// IsDuplicateSubscriber reports whether err is a DuplicateSubscriberError.
func IsDuplicateSubscriber(err error) bool {
	var dup *DuplicateSubscriberError
	return errors.As(err, &dup)
}
