package client

import (
	"context"
	"fmt"
	"time"
)

// waitWithPolling fetches the job status, evaluates it, and sleeps one
// interval between polls until evaluate reports done or an error. The poll
// count passed to evaluate starts at 1. Fetch errors end the wait.
func waitWithPolling[T any](ctx context.Context, uuid string, pollInterval time.Duration,
	fetch func(context.Context, string) (*T, error),
	evaluate func(result *T, polls int) (bool, error),
) (*T, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	timer := time.NewTimer(pollInterval)
	defer timer.Stop()

	for polls := 1; ; polls++ {
		result, err := fetch(ctx, uuid)
		if err != nil {
			return nil, err
		}

		done, evalErr := evaluate(result, polls)
		if evalErr != nil {
			return nil, evalErr
		}
		if done {
			return result, nil
		}

		if err := waitForNextPoll(ctx, timer, pollInterval); err != nil {
			return nil, err
		}
	}
}

// waitForNextPoll blocks for one interval or until ctx is done.
func waitForNextPoll(ctx context.Context, timer *time.Timer, interval time.Duration) error {
	timer.Reset(interval)
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s cancelled: %w", OperationConversion, ctx.Err())
	case <-timer.C:
		return nil
	}
}
