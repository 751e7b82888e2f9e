// Package retry provides the exponential backoff used to relaunch
// server workers that terminated on a fatal error.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ── Permanent errors ─────────────────────────────────────────────────

// PermanentError wraps an error to signal that another attempt will not
// help. Return [Permanent](err) from the operation to stop immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as final. Do returns the inner error without
// further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err has been marked as permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// ErrBudgetExhausted is wrapped into the error Do returns once
// MaxAttempts tries have all failed.
var ErrBudgetExhausted = errors.New("restart budget exhausted")

// ── Backoff ──────────────────────────────────────────────────────────

// Backoff implements exponential backoff with optional jitter.
type Backoff struct {
	// InitialDelay is the wait before the second attempt (default 100ms).
	InitialDelay time.Duration
	// MaxDelay caps the wait (default 5s).
	MaxDelay time.Duration
	// Multiplier grows the wait each attempt (default 2.0).
	Multiplier float64
	// MaxAttempts is the total number of tries including the first.
	// 0 means unlimited (until the context is cancelled).
	MaxAttempts int
	// Jitter adds ±25% randomisation so relaunched workers do not
	// move in lockstep.
	Jitter bool
	// OnRetry, when set, is called before each wait with the attempt
	// that just failed.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultBackoff returns the relaunch policy used by the server pool:
// unlimited attempts, 100ms doubling to a 5s ceiling.
func DefaultBackoff() *Backoff {
	return &Backoff{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Delay returns the un-jittered wait that follows the given 1-based
// failed attempt.
func (b *Backoff) Delay(attempt int) time.Duration {
	initial, maxDelay, multiplier := b.params()
	if attempt < 1 {
		attempt = 1
	}
	d := float64(initial) * math.Pow(multiplier, float64(attempt-1))
	if d > float64(maxDelay) {
		return maxDelay
	}
	return time.Duration(d)
}

// Do executes fn repeatedly until it returns nil, returns a permanent
// error, or the attempt budget or context is exhausted.
//
// The attempt parameter passed to fn is 1-based.
func (b *Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return errors.Unwrap(err)
		}
		if b.MaxAttempts > 0 && attempt >= b.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrBudgetExhausted, attempt, err)
		}

		wait := b.Delay(attempt)
		if b.Jitter {
			wait = addJitter(wait)
		}
		if b.OnRetry != nil {
			b.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

func (b *Backoff) params() (initial, maxDelay time.Duration, multiplier float64) {
	initial = b.InitialDelay
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	maxDelay = b.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}
	multiplier = b.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	return initial, maxDelay, multiplier
}

// addJitter adds ±25% randomisation to a duration.
func addJitter(d time.Duration) time.Duration {
	quarter := float64(d) * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	result := float64(d) + delta
	return time.Duration(math.Max(result, float64(time.Millisecond)))
}
