package llm

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"
)

// retryTransport retries transient transport failures with exponential
// backoff and full jitter. Only unavailability retries: timeouts have spent
// the tier budget and malformed responses are a model failure, not a wire
// failure. Both propagate immediately so the orchestrator can fall back.
type retryTransport struct {
	inner           Transport
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// WithRetry wraps a Transport with in-tier retry for transient failures.
func WithRetry(t Transport, maxAttempts int) Transport {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retryTransport{
		inner:           t,
		maxAttempts:     maxAttempts,
		initialInterval: 250 * time.Millisecond,
		maxInterval:     2 * time.Second,
	}
}

// Name returns the wrapped transport's name.
func (r *retryTransport) Name() string { return r.inner.Name() }

// Complete delegates to the inner transport, retrying transient failures.
func (r *retryTransport) Complete(ctx context.Context, req *CompletionRequest) (json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		raw, err := r.inner.Complete(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !IsRetryableTransport(err) || attempt == r.maxAttempts-1 {
			return nil, err
		}

		select {
		case <-time.After(r.backoff(attempt, err)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// backoff computes the wait before the next attempt: provider retry-after
// when given, otherwise exponential backoff with full jitter.
func (r *retryTransport) backoff(attempt int, err error) time.Duration {
	if after := RetryAfterHint(err); after > 0 && after <= r.maxInterval {
		return after
	}

	wait := r.initialInterval
	for i := 0; i < attempt; i++ {
		wait *= 2
		if wait > r.maxInterval {
			wait = r.maxInterval
			break
		}
	}
	// Full jitter; backoff timing needs no crypto randomness.
	return time.Duration(rand.Int64N(int64(wait) + 1))
}
