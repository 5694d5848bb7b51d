package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/stridehq/stride-api/internal/events"
)

func TestDispatchRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewDispatchRecorder(reg)

	rec.RecordDispatch(events.KindTaskCompleted, 4, 4)
	rec.RecordDispatch(events.KindTaskCompleted, 3, 4)
	rec.RecordDispatch(events.KindGoalCompleted, 0, 0)

	rec.RecordConsumer(events.KindTaskCompleted, "story", events.StatusFailure, 20*time.Millisecond)
	rec.RecordConsumer(events.KindTaskCompleted, "progress", events.StatusSuccess, time.Millisecond)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		rec.dispatches.WithLabelValues("task.completed", "full")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		rec.dispatches.WithLabelValues("task.completed", "partial")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		rec.dispatches.WithLabelValues("goal.completed", "empty")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		rec.consumerOutcomes.WithLabelValues("task.completed", "story", "failure")))
}
