package retry

import (
	"context"
	"fmt"
)

// Do runs fn, retrying according to the Retrier in ctx (or a NoopRetrier if
// none was injected via ToContext). It returns the first successful result,
// or the last error once the retrier gives up.
func Do[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	retrier := FromContextOrNoop(ctx)
	var zero T
	maxAttempts := retrier.MaxAttempts()

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if !retrier.ShouldRetry(err, attempt) {
			return zero, err
		}

		if maxAttempts > 0 && attempt >= maxAttempts {
			return zero, fmt.Errorf("max retry attempts (%d) reached: %w", maxAttempts, err)
		}

		if waitErr := retrier.Wait(ctx, attempt); waitErr != nil {
			return zero, fmt.Errorf("context cancelled while waiting to retry: %w", waitErr)
		}
	}
}

// DoVoid is Do for operations with no result value.
func DoVoid(ctx context.Context, fn func() error) error {
	_, err := Do(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
