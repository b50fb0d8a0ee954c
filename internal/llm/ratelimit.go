package llm

import (
	"context"
	"encoding/json"

	"golang.org/x/time/rate"
)

// rateLimitedTransport applies a local token-bucket limiter in front of a
// transport, smoothing request bursts before they reach provider quotas.
// Waiting is bounded by the call's context; a deadline hit while queued is
// reported as a local rate limit so the orchestrator falls back rather than
// burning the remaining tier budget.
type rateLimitedTransport struct {
	inner   Transport
	limiter *rate.Limiter
}

// WithRateLimit wraps a Transport with a local requests-per-second limiter.
func WithRateLimit(t Transport, rps float64, burst int) Transport {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedTransport{
		inner:   t,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name returns the wrapped transport's name.
func (l *rateLimitedTransport) Name() string { return l.inner.Name() }

// Complete waits for a token, then delegates to the inner transport.
func (l *rateLimitedTransport) Complete(ctx context.Context, req *CompletionRequest) (json.RawMessage, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RateLimitError{Transport: l.inner.Name(), Err: err}
	}
	return l.inner.Complete(ctx, req)
}
