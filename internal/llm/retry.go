package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryProvider resends failed requests with exponential backoff and
// jitter. A malformed answer is resent once. Requests that cannot succeed
// on a second try are returned at once (see Retryable).
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger logrus.FieldLogger
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, logger logrus.FieldLogger) Provider {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RetryProvider{
		inner:  p,
		config: cfg,
		logger: logger.WithField("component", "llm"),
		sleep:  sleepContext,
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	resentInvalid := false

	var lastErr error
	for attempt := range attempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !Retryable(err) {
			return nil, err
		}
		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if resentInvalid {
				return nil, err
			}
			resentInvalid = true
		}
		if attempt == attempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		// A learner is waiting on the answer; give up rather than sleep
		// past the caller's deadline.
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return nil, err
		}

		tags := TagsFrom(ctx)
		r.logger.WithError(err).WithFields(logrus.Fields{
			"purpose": tags.Purpose,
			"attempt": attempt + 1,
			"wait_ms": wait.Milliseconds(),
		}).Debug("retrying llm request")

		if err := r.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff computes the wait before the next attempt. A Retry-After from the
// provider wins over the computed value.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 {
		wait = min(wait, float64(r.config.MaxWait))
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
