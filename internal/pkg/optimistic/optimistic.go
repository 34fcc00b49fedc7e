// Package optimistic provides the shared retry routine for optimistic-concurrency
// writes. Every versioned entity mutation goes through Execute: a full
// read-validate-mutate-conditional-write cycle is attempted, and only a lost
// update (errs.ErrVersionConflict) triggers a bounded, backed-off re-run of the
// whole cycle. Validation and logic errors are never retried.
package optimistic

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"routing/internal/pkg/errs"
)

const (
	// DefaultMaxRetries is the number of re-runs after the initial attempt.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the backoff before the first retry; it doubles per retry.
	DefaultBaseDelay = 100 * time.Millisecond

	// DefaultMaxDelay caps the backoff regardless of retry count.
	DefaultMaxDelay = 2 * time.Second
)

// Attempt runs one full mutation cycle: read the entity fresh, validate the
// requested change, apply the mutation, and perform the conditional write.
// It returns the entity version observed during the cycle so conflicts can be
// reported precisely, and an error describing the outcome. Returning an error
// that unwraps to errs.ErrVersionConflict marks the cycle as having lost an
// optimistic race; any other error aborts immediately.
type Attempt func(ctx context.Context) (observedVersion int64, err error)

// Policy controls retry bounds and backoff shape. The zero value is not
// usable; construct via DefaultPolicy and override fields as needed.
// Sleep and Jitter are injectable so tests can run deterministically without
// real delays.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// Sleep waits for the given duration or until ctx is done.
	// Defaults to a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error

	// Jitter returns a value in [0,1) used to spread retry delays.
	// Defaults to math/rand/v2.
	Jitter func() float64
}

// DefaultPolicy returns the standard policy: 3 retries, 100ms base delay
// doubling per retry with jitter, capped at 2s.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
	}
}

// Execute runs the attempt until it succeeds, fails with a non-retryable
// error, or exhausts the retry budget. Exhaustion yields an
// errs.ConcurrencyConflictError carrying the last observed version, the total
// attempt count, and the final conflict as cause.
func Execute(ctx context.Context, policy Policy, entityID string, attempt Attempt) error {
	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepWithContext
	}
	jitter := policy.Jitter
	if jitter == nil {
		jitter = rand.Float64
	}

	var (
		lastObserved int64
		lastErr      error
	)

	attempts := policy.MaxRetries + 1
	for i := range attempts {
		observed, err := attempt(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrVersionConflict) {
			return err
		}

		lastObserved = observed
		lastErr = err

		if i == attempts-1 {
			break
		}

		delay := backoffDelay(policy, i, jitter())
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}

	return errs.NewConcurrencyConflictErrorWithCause(entityID, lastObserved, attempts, lastErr)
}

// backoffDelay doubles the base delay per completed attempt and spreads
// concurrent retriers with up to +50% jitter.
func backoffDelay(policy Policy, retry int, jitter float64) time.Duration {
	delay := policy.BaseDelay << retry
	delay += time.Duration(float64(delay) * 0.5 * jitter)
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}
	return delay
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
