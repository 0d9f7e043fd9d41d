package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForReturnsImmediatelyForNonPositive(t *testing.T) {
	called := false
	err := WaitFor(context.Background(), 0, func(time.Duration) { called = true })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("sleeper must not be called for zero duration")
	}
}

func TestWaitForUsesSleeper(t *testing.T) {
	var got time.Duration
	err := WaitFor(context.Background(), 3*time.Second, func(d time.Duration) { got = d })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3*time.Second {
		t.Fatalf("expected sleeper to receive 3s, got %v", got)
	}
}

func TestWaitForHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)

	err := WaitFor(ctx, time.Hour, func(time.Duration) { <-release })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
