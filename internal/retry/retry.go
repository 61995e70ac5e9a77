// Package retry provides a small retry helper with linear backoff, shared
// by every fetch call site.
package retry

import (
	"context"
	"time"
)

// Policy bounds how often an operation is reattempted. Delay is the base
// backoff unit: the wait after failed attempt n is Delay multiplied by n.
type Policy struct {
	Retries int           // additional attempts after the first
	Delay   time.Duration // base delay between attempts
}

// Do runs op up to 1+p.Retries times and returns the last encountered error
// once the budget is exhausted. Between attempts it sleeps Delay*attempt,
// returning early with ctx.Err() if the context is canceled while waiting.
func Do(ctx context.Context, p Policy, op func(context.Context) error) error {
	attempts := p.Retries + 1
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, p.Delay*time.Duration(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
