// Package utils holds small helpers shared by the AI clients and the pipeline.
package utils

import (
	"context"
	"time"
)

// WaitFor blocks for d unless ctx ends first. sleeper replaces time.Sleep
// so retry loops can be tested without waiting.
func WaitFor(ctx context.Context, d time.Duration, sleeper func(time.Duration)) error {
	if d <= 0 {
		return ctx.Err()
	}
	if sleeper == nil {
		sleeper = time.Sleep
	}

	slept := make(chan struct{})
	go func() {
		sleeper(d)
		close(slept)
	}()

	select {
	case <-slept:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
