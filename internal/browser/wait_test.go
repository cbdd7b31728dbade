package browser

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestPollImmediateSuccess verifies the predicate is evaluated on entry.
func TestPollImmediateSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Poll(context.Background(), time.Hour, time.Hour, func() (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("predicate called %d times, want 1", calls)
	}
}

// TestPollEventualSuccess verifies repeated evaluation until true.
func TestPollEventualSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Poll(context.Background(), time.Millisecond, time.Second, func() (bool, error) {
		calls++
		return calls >= 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls < 3 {
		t.Errorf("predicate called %d times, want >= 3", calls)
	}
}

// TestPollTimeout verifies ErrPollTimeout when the condition never holds.
func TestPollTimeout(t *testing.T) {
	t.Parallel()

	err := Poll(context.Background(), 5*time.Millisecond, 30*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, ErrPollTimeout) {
		t.Errorf("got %v, want ErrPollTimeout", err)
	}
}

// TestPollPredicateErrorAttached verifies transient predicate errors are
// tolerated but surface in the timeout error.
func TestPollPredicateErrorAttached(t *testing.T) {
	t.Parallel()

	readErr := errors.New("element detached")
	err := Poll(context.Background(), 5*time.Millisecond, 30*time.Millisecond, func() (bool, error) {
		return false, readErr
	})
	if !errors.Is(err, ErrPollTimeout) {
		t.Errorf("got %v, want ErrPollTimeout", err)
	}
	if !errors.Is(err, readErr) {
		t.Errorf("timeout error should carry the last predicate error: %v", err)
	}
}

// TestPollCancellation verifies context cancellation interrupts the wait.
func TestPollCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Poll(ctx, time.Millisecond, time.Minute, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

// TestPollValue verifies the before/after change detector.
func TestPollValue(t *testing.T) {
	t.Parallel()

	t.Run("value changes", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := PollValue(context.Background(), time.Millisecond, time.Second, 0, func() (int, error) {
			calls++
			if calls >= 3 {
				return 2, nil
			}
			return 0, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 2 {
			t.Errorf("got %d, want 2", got)
		}
	})

	t.Run("value never changes", func(t *testing.T) {
		t.Parallel()

		got, err := PollValue(context.Background(), 5*time.Millisecond, 30*time.Millisecond, 1, func() (int, error) {
			return 1, nil
		})
		if !errors.Is(err, ErrPollTimeout) {
			t.Errorf("got %v, want ErrPollTimeout", err)
		}
		if got != 1 {
			t.Errorf("got %d, want initial value 1", got)
		}
	})
}
