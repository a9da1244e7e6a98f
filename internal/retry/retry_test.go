package retry

import (
	"context"
	"errors"
	"testing"
)

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), Config{MaxAttempts: 3}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	sentinel := errors.New("permanent")
	err := WithRetry(context.Background(), Config{MaxAttempts: 2}, func() error {
		return sentinel
	})
	if err == nil {
		t.Fatalf("WithRetry should fail after exhausting attempts")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("error should wrap the last failure: %v", err)
	}
}

func TestWithRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, Config{MaxAttempts: 5}, func() error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
