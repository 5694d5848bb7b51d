// Package metrics provides the prometheus-backed dispatch metrics
// recorder and the registry it publishes on.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stridehq/stride-api/internal/events"
)

// DispatchRecorder implements events.Recorder on top of prometheus
// collectors. One instance is created at startup and handed to the bus.
type DispatchRecorder struct {
	dispatches       *prometheus.CounterVec
	consumerOutcomes *prometheus.CounterVec
	consumerDuration *prometheus.HistogramVec
}

// NewDispatchRecorder creates the dispatch collectors and registers them
// with the given registerer.
func NewDispatchRecorder(reg prometheus.Registerer) *DispatchRecorder {
	r := &DispatchRecorder{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stride",
				Subsystem: "dispatch",
				Name:      "total",
				Help:      "Completed publish calls, by event kind and overall outcome",
			},
			[]string{"kind", "outcome"},
		),
		consumerOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stride",
				Subsystem: "dispatch",
				Name:      "consumer_total",
				Help:      "Consumer invocations, by event kind, consumer name and status",
			},
			[]string{"kind", "consumer", "status"},
		),
		consumerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stride",
				Subsystem: "dispatch",
				Name:      "consumer_duration_seconds",
				Help:      "Consumer execution time in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "consumer"},
		),
	}

	reg.MustRegister(r.dispatches, r.consumerOutcomes, r.consumerDuration)
	return r
}

// RecordDispatch implements events.Recorder.
func (r *DispatchRecorder) RecordDispatch(kind events.Kind, succeeded, total int) {
	outcome := "full"
	switch {
	case total == 0:
		outcome = "empty"
	case succeeded < total:
		outcome = "partial"
	}
	r.dispatches.WithLabelValues(string(kind), outcome).Inc()
}

// RecordConsumer implements events.Recorder.
func (r *DispatchRecorder) RecordConsumer(
	kind events.Kind,
	consumer string,
	status events.Status,
	elapsed time.Duration,
) {
	r.consumerOutcomes.WithLabelValues(string(kind), consumer, string(status)).Inc()
	r.consumerDuration.WithLabelValues(string(kind), consumer).Observe(elapsed.Seconds())
}

var _ events.Recorder = (*DispatchRecorder)(nil)
