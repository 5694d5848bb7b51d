package events

import "time"

// Status classifies the outcome of one consumer invocation. Timeouts are
// a distinct status so slow-but-working dependencies can be told apart
// from broken logic operationally.
type Status string

// Consumer outcome statuses.
const (
	StatusSuccess  Status = "success"
	StatusFailure  Status = "failure"
	StatusTimedOut Status = "timed_out"
)

// ConsumerResult records the outcome of a single consumer for one
// dispatch. It is created once and never mutated afterwards.
type ConsumerResult struct {
	// Name is the subscriber name the consumer registered with.
	Name string `json:"name"`

	// Status is the outcome classification.
	Status Status `json:"status"`

	// Error holds the captured error message for failures; empty on success.
	Error string `json:"error,omitempty"`

	// Duration is how long the consumer ran, bounded by the timeout for
	// timed-out consumers.
	Duration time.Duration `json:"duration"`
}

// DispatchReport aggregates the per-consumer outcomes of one publish
// call. Results follow the original subscription order regardless of
// completion order, so the report is deterministic for logging and tests.
// len(Results) == Total always holds; a timed-out consumer keeps its slot.
type DispatchReport struct {
	CorrelationID string           `json:"correlation_id"`
	Kind          Kind             `json:"kind"`
	Total         int              `json:"total"`
	Succeeded     int              `json:"succeeded"`
	Results       []ConsumerResult `json:"results"`
}

// AllSucceeded reports whether every consumer completed successfully.
func (r DispatchReport) AllSucceeded() bool {
	return r.Succeeded == r.Total
}

// ResultFor returns the result entry for the named consumer.
// The second return value is false when no such consumer was dispatched.
func (r DispatchReport) ResultFor(name string) (ConsumerResult, bool) {
	for _, result := range r.Results {
		if result.Name == name {
			return result, true
		}
	}
	return ConsumerResult{}, false
}
