package events

import "time"

// Recorder receives dispatch observations. The prometheus-backed
// implementation lives in internal/platform/metrics; the bus itself only
// depends on this interface.
type Recorder interface {
	// RecordDispatch observes one completed publish call.
	RecordDispatch(kind Kind, succeeded, total int)

	// RecordConsumer observes one consumer outcome within a dispatch.
	RecordConsumer(kind Kind, consumer string, status Status, elapsed time.Duration)
}

// noopRecorder is the default Recorder when none is configured.
type noopRecorder struct{}

func (noopRecorder) RecordDispatch(Kind, int, int)                       {}
func (noopRecorder) RecordConsumer(Kind, string, Status, time.Duration) {}
