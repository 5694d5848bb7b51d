package events

import (
	"context"
	"fmt"
	"time"
)

// WithRetry wraps a consumer with a bounded retry policy: up to attempts
// total invocations with the delay doubling between them. Retries are a
// policy layered above the coordinator on purpose; the coordinator
// itself never retries, which keeps its failure semantics simple. The
// consumer's overall budget is still the coordinator's timeout, so the
// wrapped consumer gives up as soon as the context is done.
func WithRetry(consumer Consumer, attempts int, delay time.Duration) Consumer {
	if attempts < 1 {
		attempts = 1
	}

	return ConsumerFunc(func(ctx context.Context, event Event) error {
		var lastErr error
		wait := delay

		for attempt := 1; attempt <= attempts; attempt++ {
			lastErr = consumer.Handle(ctx, event)
			if lastErr == nil {
				return nil
			}

			if attempt == attempts {
				break
			}

			select {
			case <-time.After(wait):
				wait *= 2
			case <-ctx.Done():
				return fmt.Errorf("retry abandoned after attempt %d: %w", attempt, ctx.Err())
			}
		}

		return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
	})
}
