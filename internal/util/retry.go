package util

import (
	"context"

	"github.com/teranos/visualgenome/errors"
)

// RetryWithContext calls fn up to maxTries times until it returns a nil error.
// Attempts are numbered from 1. It stops early when ctx is done, when fn
// returns a context error, or when shouldRetry rejects the error; a nil
// shouldRetry retries everything. If maxTries <= 0, it defaults to 1.
// Returns the last error if all attempts fail.
func RetryWithContext[T any](ctx context.Context, maxTries int, shouldRetry func(error) bool, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	if maxTries <= 0 {
		maxTries = 1
	}
	var lastErr error
	var zero T
	for attempt := 1; attempt <= maxTries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		lastErr = err
		if shouldRetry != nil && !shouldRetry(err) {
			break
		}
	}
	return zero, lastErr
}
