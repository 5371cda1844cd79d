package page

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultWaitTimeout  = 10 * time.Second
	DefaultPollInterval = time.Second
)

func WaitForQuestion(ctx context.Context, src Source, timeout, interval time.Duration) (Snapshot, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		snap, err := src.Snapshot(ctx)
		if err == nil && snap.HasQuestion() {
			return snap, nil
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-deadline.C:
			if lastErr != nil {
				return Snapshot{}, fmt.Errorf("%w after %s: %w", ErrWaitTimeout, timeout, lastErr)
			}
			return Snapshot{}, fmt.Errorf("%w after %s", ErrWaitTimeout, timeout)
		case <-ticker.C:
		}
	}
}
