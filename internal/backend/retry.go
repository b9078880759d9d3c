package backend

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// BackoffStrategy yields the delay before a given retry attempt (1-based).
type BackoffStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff doubles the initial delay on every attempt.
type ExponentialBackoff struct {
	Initial time.Duration
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	return eb.Initial * time.Duration(math.Pow(2, float64(attempt-1)))
}

// RetryPolicy retries transient failures up to MaxAttempts, backing off
// between attempts. Fatal errors stop immediately.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffStrategy
}

// DefaultRetryPolicy is three attempts with 500ms exponential backoff.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: 3,
		Backoff:     &ExponentialBackoff{Initial: 500 * time.Millisecond},
	}
}

// Do runs fn until it succeeds, fails fatally, exhausts the attempt budget,
// or the context is cancelled.
func (p *RetryPolicy) Do(ctx context.Context, logger zerolog.Logger, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) || attempt == attempts {
			return err
		}

		delay := time.Duration(0)
		if p.Backoff != nil {
			delay = p.Backoff.NextDelay(attempt)
		}
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("transient backend failure, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
