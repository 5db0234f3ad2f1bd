package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLinearBackoff(t *testing.T) {
	b := LinearBackoff(10 * time.Second)
	for attempt, want := range map[int]time.Duration{
		1: 10 * time.Second,
		2: 20 * time.Second,
		5: 50 * time.Second,
	} {
		if got := b(attempt); got != want {
			t.Errorf("LinearBackoff(10s)(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestExponentialBackoffCapped(t *testing.T) {
	b := ExponentialBackoff(100*time.Millisecond, time.Second, 2.0, 0)
	if got := b(1); got != 100*time.Millisecond {
		t.Errorf("attempt 1 = %v", got)
	}
	if got := b(10); got != time.Second {
		t.Errorf("attempt 10 = %v, want cap 1s", got)
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(time.Millisecond),
	}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" || calls != 3 {
		t.Errorf("result=%q calls=%d", result, calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := errors.New("still down")
	_, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 4,
		Backoff:     LinearBackoff(time.Microsecond),
	}, func() (int, error) {
		calls++
		return 0, transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 attempts, got %d", calls)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	_, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(time.Microsecond),
		RetryIf:     func(err error) bool { return !errors.Is(err, fatal) },
	}, func() (int, error) {
		calls++
		return 0, fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 attempt, got %d", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, DefaultRetryConfig(), func() (int, error) {
		return 0, errors.New("never retried")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryReportsAttempts(t *testing.T) {
	var seen []int
	_, _ = Retry(context.Background(), RetryConfig{
		MaxAttempts: 3,
		Backoff:     LinearBackoff(time.Microsecond),
		OnRetry: func(attempt int, _ error, _ time.Duration) {
			seen = append(seen, attempt)
		},
	}, func() (int, error) {
		return 0, errors.New("x")
	})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("unexpected OnRetry attempts: %v", seen)
	}
}
