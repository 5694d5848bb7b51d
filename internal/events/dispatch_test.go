package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchReportAlwaysCoversEverySubscriber(t *testing.T) {
	bus := newTestBus()
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "ok", &stubConsumer{}))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "failing", &stubConsumer{err: errors.New("boom")}))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "sleepy", &stubConsumer{delay: time.Second}))

	report := bus.Publish(
		context.Background(),
		NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil),
		WithTimeout(30*time.Millisecond),
	)

	// A timeout or failure never drops a result slot.
	assert.Equal(t, 3, report.Total)
	assert.Len(t, report.Results, 3)
	assert.Equal(t, 1, report.Succeeded)
}

func TestDispatchOneFailureDoesNotSinkTheOthers(t *testing.T) {
	bus := newTestBus()
	progress := &stubConsumer{}
	story := &stubConsumer{err: errors.New("llm unavailable")}
	notification := &stubConsumer{}
	memory := &stubConsumer{}

	require.NoError(t, bus.Subscribe(KindTaskCompleted, "progress", progress))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "story", story))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "notification", notification))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "memory", memory))

	report := bus.Publish(context.Background(), NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil))

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Succeeded)

	storyResult, ok := report.ResultFor("story")
	require.True(t, ok)
	assert.Equal(t, StatusFailure, storyResult.Status)
	assert.Equal(t, "llm unavailable", storyResult.Error)

	for _, name := range []string{"progress", "notification", "memory"} {
		result, ok := report.ResultFor(name)
		require.True(t, ok, "missing result for %s", name)
		assert.Equal(t, StatusSuccess, result.Status, "consumer %s", name)
	}
}

func TestDispatchPanicIsContained(t *testing.T) {
	bus := newTestBus()
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "panicky", &stubConsumer{panic: true}))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "steady", &stubConsumer{}))

	var report DispatchReport
	require.NotPanics(t, func() {
		report = bus.Publish(context.Background(), NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil))
	})

	panicked, ok := report.ResultFor("panicky")
	require.True(t, ok)
	assert.Equal(t, StatusFailure, panicked.Status)
	assert.Contains(t, panicked.Error, "panic")

	steady, ok := report.ResultFor("steady")
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, steady.Status)
}

func TestDispatchTimeoutBoundsWallClock(t *testing.T) {
	bus := newTestBus()
	// Ignores cancellation by sleeping through it.
	stuck := ConsumerFunc(func(ctx context.Context, event Event) error {
		time.Sleep(500 * time.Millisecond)
		return nil
	})
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "stuck", stuck))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "quick", &stubConsumer{}))

	start := time.Now()
	report := bus.Publish(
		context.Background(),
		NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil),
		WithTimeout(30*time.Millisecond),
	)
	elapsed := time.Since(start)

	// The coordinator must return around the timeout bound, not wait out
	// the stuck consumer's full 500ms.
	assert.Less(t, elapsed, 150*time.Millisecond, "dispatch took %s", elapsed)

	stuckResult, ok := report.ResultFor("stuck")
	require.True(t, ok)
	assert.Equal(t, StatusTimedOut, stuckResult.Status)
	assert.Contains(t, stuckResult.Error, "timeout")

	quickResult, ok := report.ResultFor("quick")
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, quickResult.Status)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Succeeded)
}

func TestDispatchCooperativeCancellationOnTimeout(t *testing.T) {
	bus := newTestBus()
	canceled := make(chan struct{})
	cooperative := ConsumerFunc(func(ctx context.Context, event Event) error {
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	})
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "cooperative", cooperative))

	bus.Publish(
		context.Background(),
		NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil),
		WithTimeout(20*time.Millisecond),
	)

	select {
	case <-canceled:
		// The consumer observed the cancellation signal.
	case <-time.After(time.Second):
		t.Fatal("consumer never saw the cancellation signal")
	}
}

func TestDispatchResultsFollowSubscriptionOrder(t *testing.T) {
	bus := newTestBus()
	// Later subscribers finish earlier; the report order must not care.
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "alpha", &stubConsumer{delay: 60 * time.Millisecond}))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "beta", &stubConsumer{delay: 30 * time.Millisecond}))
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "gamma", &stubConsumer{}))

	report := bus.Publish(context.Background(), NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil))

	require.Len(t, report.Results, 3)
	assert.Equal(t, "alpha", report.Results[0].Name)
	assert.Equal(t, "beta", report.Results[1].Name)
	assert.Equal(t, "gamma", report.Results[2].Name)
}

func TestDispatchRunsConsumersInParallel(t *testing.T) {
	bus := newTestBus()
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, bus.Subscribe(KindTaskCompleted, name, &stubConsumer{delay: 80 * time.Millisecond}))
	}

	start := time.Now()
	report := bus.Publish(context.Background(), NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil))
	elapsed := time.Since(start)

	assert.Equal(t, 4, report.Succeeded)
	// Sequential execution would take at least 320ms.
	assert.Less(t, elapsed, 250*time.Millisecond,
		"consumers should run concurrently, took %s", elapsed)
}

func TestDispatchParentContextCanceled(t *testing.T) {
	bus := newTestBus()
	require.NoError(t, bus.Subscribe(KindTaskCompleted, "slow", &stubConsumer{delay: time.Second}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	report := bus.Publish(ctx, NewEvent(KindTaskCompleted, uuid.New(), uuid.New(), nil))

	result, ok := report.ResultFor("slow")
	require.True(t, ok)
	assert.Equal(t, StatusFailure, result.Status)
	assert.Contains(t, result.Error, "canceled")
}
