package browser

import (
	"context"
	"errors"
	"time"
)

// ErrPollTimeout is returned by Poll when the predicate never became true
// within the timeout.
var ErrPollTimeout = errors.New("condition not met before timeout")

// Poll repeatedly evaluates predicate until it returns true, the timeout
// elapses, or the context is cancelled. The predicate is evaluated
// immediately on entry, then once per interval.
//
// Predicate errors are treated as "condition not yet met" rather than
// failures: probes poll DOM state that can be transiently unreadable
// mid-animation, and bailing on the first read error would reintroduce
// the flakiness the poll exists to remove. The last predicate error is
// attached to the timeout error for diagnosis.
func Poll(ctx context.Context, interval, timeout time.Duration, predicate func() (bool, error)) error {
	deadline := time.Now().Add(timeout)

	var lastErr error
	for {
		ok, err := predicate()
		if err != nil {
			lastErr = err
		} else if ok {
			return nil
		}

		if time.Now().After(deadline) {
			if lastErr != nil {
				return errors.Join(ErrPollTimeout, lastErr)
			}
			return ErrPollTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// PollValue polls until extract returns a value different from initial,
// returning that value. Used for before/after probes such as "click the
// chevron and wait for the active slide index to move". On timeout the
// initial value is returned with ErrPollTimeout.
func PollValue[T comparable](ctx context.Context, interval, timeout time.Duration, initial T, extract func() (T, error)) (T, error) {
	current := initial
	err := Poll(ctx, interval, timeout, func() (bool, error) {
		v, err := extract()
		if err != nil {
			return false, err
		}
		current = v
		return v != initial, nil
	})
	return current, err
}
