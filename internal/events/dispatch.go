package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// coordinator runs every matched subscriber for one event concurrently
// and assembles the DispatchReport. It is a hard failure boundary:
// nothing raised inside a consumer, panics included, crosses it.
type coordinator struct {
	logger  *slog.Logger
	metrics Recorder
}

// dispatch starts one goroutine per subscriber and waits until every one
// has reported or timed out. Result slots follow subscription order even
// though execution is concurrent.
func (c *coordinator) dispatch(
	ctx context.Context,
	event Event,
	subs []subscription,
	timeout time.Duration,
) DispatchReport {
	results := make([]ConsumerResult, len(subs))

	var wg sync.WaitGroup
	for i := range subs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.runConsumer(ctx, event, subs[i], timeout)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, result := range results {
		if result.Status == StatusSuccess {
			succeeded++
		}
		c.metrics.RecordConsumer(event.Kind, result.Name, result.Status, result.Duration)
	}

	report := DispatchReport{
		CorrelationID: event.CorrelationID,
		Kind:          event.Kind,
		Total:         len(subs),
		Succeeded:     succeeded,
		Results:       results,
	}
	c.metrics.RecordDispatch(event.Kind, succeeded, len(subs))
	c.logReport(report)

	return report
}

// runConsumer executes one subscriber bounded by the timeout. A normal
// return yields Success; an error or panic yields Failure with the
// message captured; exceeding the timeout yields TimedOut. On timeout
// the coordinator stops waiting but does not preempt the goroutine: the
// context carries the cancellation signal and a well-behaved consumer
// abandons its in-flight work when it sees it.
func (c *coordinator) runConsumer(
	ctx context.Context,
	event Event,
	sub subscription,
	timeout time.Duration,
) ConsumerResult {
	start := time.Now()

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so an abandoned consumer can still deliver its result
	// and let the goroutine exit instead of leaking on the send.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("consumer panic: %v", p)
			}
		}()
		done <- sub.consumer.Handle(cctx, event)
	}()

	select {
	case err := <-done:
		elapsed := time.Since(start)
		if err != nil {
			c.logger.Warn("consumer failed",
				"consumer", sub.name,
				"kind", string(event.Kind),
				"correlation_id", event.CorrelationID,
				"duration_ms", elapsed.Milliseconds(),
				"error", err)
			return ConsumerResult{
				Name:     sub.name,
				Status:   StatusFailure,
				Error:    err.Error(),
				Duration: elapsed,
			}
		}
		return ConsumerResult{
			Name:     sub.name,
			Status:   StatusSuccess,
			Duration: elapsed,
		}

	case <-cctx.Done():
		elapsed := time.Since(start)
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("consumer timed out",
				"consumer", sub.name,
				"kind", string(event.Kind),
				"correlation_id", event.CorrelationID,
				"timeout_ms", timeout.Milliseconds())
			return ConsumerResult{
				Name:     sub.name,
				Status:   StatusTimedOut,
				Error:    fmt.Sprintf("exceeded %s timeout", timeout),
				Duration: elapsed,
			}
		}
		// The parent context was canceled before the timeout fired.
		return ConsumerResult{
			Name:     sub.name,
			Status:   StatusFailure,
			Error:    "dispatch canceled: " + cctx.Err().Error(),
			Duration: elapsed,
		}
	}
}

// logReport emits the structured per-dispatch log line: one summary plus
// a compact per-consumer breakdown, all keyed by the correlation id.
func (c *coordinator) logReport(report DispatchReport) {
	attrs := []any{
		"correlation_id", report.CorrelationID,
		"kind", string(report.Kind),
		"succeeded", report.Succeeded,
		"total", report.Total,
	}
	for _, result := range report.Results {
		attrs = append(attrs, "consumer."+result.Name,
			fmt.Sprintf("%s/%dms", result.Status, result.Duration.Milliseconds()))
	}

	if report.AllSucceeded() {
		c.logger.Info("dispatch complete", attrs...)
	} else {
		c.logger.Warn("dispatch complete with failures", attrs...)
	}
}
