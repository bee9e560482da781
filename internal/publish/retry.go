// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryBaseDelay is the first backoff interval. Tests override this to avoid
// real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 4

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry calls fn until it succeeds, returns a Permanent error, or maxRetries
// attempts have failed. The wait doubles after each failure starting at
// RetryBaseDelay: 1 s, 2 s, 4 s. onRetry, if set, is told about each failed
// attempt before the wait. When maxRetries is 0 the default (4) is used.
func Retry(ctx context.Context, maxRetries int, fn func(ctx context.Context) error, onRetry func(attempt int, backoff time.Duration, err error)) error {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if onRetry != nil {
			onRetry(attempt+1, backoff, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return lastErr
}
