package perf

import (
	"context"
	"time"
)

const (
	flushBackoffInitial = 50 * time.Microsecond
	flushBackoffCap     = 2 * time.Millisecond
	flushQuietStreak    = 3
	flushMaxAttempts    = 64
)

// Flush blocks until the event ring has been observed empty across several
// consecutive polls, using an exponential backoff between polls starting at
// 50µs and capped at 2ms. It returns ErrAgain if the ring never settles
// within a bounded number of attempts, or ctx.Err() if ctx is cancelled
// first. Flush never blocks forever: callers that don't need cancellation
// can pass context.Background().
func Flush(ctx context.Context) error {
	c := current()
	if c == nil {
		return ErrNotInitialised
	}

	backoff := flushBackoffInitial
	quiet := 0
	for attempt := 0; attempt < flushMaxAttempts; attempt++ {
		if c.batcher.IsEmpty() {
			quiet++
			if quiet >= flushQuietStreak {
				return nil
			}
		} else {
			quiet = 0
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > flushBackoffCap {
			backoff = flushBackoffCap
		}
	}
	return ErrAgain
}
