// Package retry runs an operation with bounded exponential backoff. With the
// default policy an operation is attempted 3 times, waiting 1s and then 2s
// between attempts.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultAttempts    = 3
	DefaultInitialWait = time.Second
)

// Notify is called after a failed attempt, before waiting for the next one.
// Attempts are counted from 1.
type Notify func(attempt int, err error, wait time.Duration)

type Policy struct {
	// total number of attempts, including the first, values < 1 mean 1
	Attempts int
	// wait after the first failure, doubled after each subsequent one
	InitialWait time.Duration
	// used to wait between attempts, nil uses a real timer
	Timer backoff.Timer
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:    DefaultAttempts,
		InitialWait: DefaultInitialWait,
	}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	initial := p.InitialWait
	if initial <= 0 {
		initial = DefaultInitialWait
	}
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	exp := &backoff.ExponentialBackOff{
		InitialInterval:     initial,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Hour,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exp.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}

// Do calls op until it succeeds, returns a Permanent error or the policy runs
// out of attempts. The error of the last attempt is returned.
func (p Policy) Do(ctx context.Context, op func() error, notify Notify) error {
	attempt := 0
	operation := func() error {
		attempt++
		return op()
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempt, err, wait)
		}
	}

	return backoff.RetryNotifyWithTimer(operation, p.backOff(ctx), onRetry, p.Timer)
}

// Permanent wraps err so that Do returns it immediately without retrying.
// Do unwraps it again before returning.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Pause blocks for d or until ctx is done.
func Pause(ctx context.Context, d time.Duration) error {
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
