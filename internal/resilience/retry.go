// Package resilience provides bounded retry policies for external service calls.
package resilience

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// Tier is one bounded retry budget with its own backoff schedule.
type Tier struct {
	// MaxRetries is the number of retries after the first failure in this
	// tier. Zero disables the tier.
	MaxRetries int

	// InitialBackoff is the delay before the first retry of this tier.
	InitialBackoff time.Duration

	// Multiplier scales the delay after each retry. 1 gives a fixed delay.
	Multiplier float64

	// MaxBackoff caps a single delay. Zero means uncapped.
	MaxBackoff time.Duration
}

// Backoff returns the delay before the retry with the given zero-based index.
func (t Tier) Backoff(retry int) time.Duration {
	mul := t.Multiplier
	if mul <= 0 {
		mul = 1
	}
	delay := float64(t.InitialBackoff) * math.Pow(mul, float64(retry))
	if t.MaxBackoff > 0 && delay > float64(t.MaxBackoff) {
		delay = float64(t.MaxBackoff)
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// RetryKind names the tier a retry was charged to.
type RetryKind string

const (
	RetryRateLimit RetryKind = "rate_limit"
	RetryTransient RetryKind = "transient"
)

// RetryEvent describes a retry about to happen.
type RetryEvent struct {
	Kind    RetryKind
	Attempt int // the attempt that just failed, starting at 1
	Delay   time.Duration
	Err     error
}

// Policy composes two independent retry tiers. Rate-limit errors (see
// IsRateLimited) draw from RateLimit; every other error draws from
// Transient. Exhausting a tier returns the last error immediately, even if
// the other tier still has budget, so the worst case is
// 1 + RateLimit.MaxRetries + Transient.MaxRetries attempts.
type Policy struct {
	RateLimit Tier
	Transient Tier

	// Sleep waits between attempts. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry is called before each retry sleep.
	OnRetry func(ev RetryEvent)
}

// DefaultPolicy returns the policy used for chat completions: up to three
// rate-limit retries at 1s, 2s, 4s and up to two transient retries 1s apart.
func DefaultPolicy() Policy {
	return Policy{
		RateLimit: Tier{MaxRetries: 3, InitialBackoff: time.Second, Multiplier: 2},
		Transient: Tier{MaxRetries: 2, InitialBackoff: time.Second, Multiplier: 1},
	}
}

// MaxAttempts is the worst-case number of calls Do makes.
func (p Policy) MaxAttempts() int {
	return 1 + max(p.RateLimit.MaxRetries, 0) + max(p.Transient.MaxRetries, 0)
}

// Do executes fn under the policy. Cancellation of ctx stops retries
// immediately; errors that merely wrap a deadline, such as an HTTP client
// timeout, are retried like any other transient failure.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal executes fn returning a value with retry logic. Same semantics as Do
// but preserves the return value from the successful call.
func DoVal[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	var zero T
	var rateLimited, transient int
	for attempt := 1; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}

		// A provider-side timeout is transient; only the caller's ctx stops retries.
		if ctx.Err() != nil {
			return zero, err
		}

		ev := RetryEvent{Attempt: attempt, Err: err}
		if IsRateLimited(err) {
			if rateLimited >= p.RateLimit.MaxRetries {
				return zero, err
			}
			ev.Kind = RetryRateLimit
			ev.Delay = p.RateLimit.Backoff(rateLimited)
			rateLimited++
		} else {
			if transient >= p.Transient.MaxRetries {
				return zero, err
			}
			ev.Kind = RetryTransient
			ev.Delay = p.Transient.Backoff(transient)
			transient++
		}

		if p.OnRetry != nil {
			p.OnRetry(ev)
		}

		if sleepErr := sleep(ctx, ev.Delay); sleepErr != nil {
			return zero, err
		}
	}
}

func timerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	return timerSleep(ctx, d)
}

// RetryLogger returns an OnRetry callback that logs each retry attempt.
func RetryLogger(service, operation string) func(RetryEvent) {
	return func(ev RetryEvent) {
		zap.L().Warn("retrying operation",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.String("kind", string(ev.Kind)),
			zap.Int("attempt", ev.Attempt),
			zap.Duration("delay", ev.Delay),
			zap.Error(ev.Err),
		)
	}
}
