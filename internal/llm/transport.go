package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// CompletionRequest is one structured-output call to an AI provider.
type CompletionRequest struct {
	Operation   Operation
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64

	// Timeout bounds the call. Zero inherits the caller's context deadline.
	Timeout time.Duration
}

// Transport sends completion requests to one concrete AI provider. The two
// AI tiers differ only in transport: a server-mediated OpenAI-compatible
// gateway versus a direct vendor SDK.
//
// Complete returns validated raw JSON conforming to the request schema, or
// one of this package's failure classes (timeout, malformed, rate limit,
// unavailable). It must honor context cancellation.
type Transport interface {
	Name() string
	Complete(ctx context.Context, req *CompletionRequest) (json.RawMessage, error)
}

// callWithTimeout runs one transport call under its declared timeout,
// normalizing deadline expiry into a TimeoutError so tier advancement is a
// simple classification match rather than context-error plumbing.
func callWithTimeout(ctx context.Context, t Transport, req *CompletionRequest,
	do func(context.Context) (json.RawMessage, error),
) (json.RawMessage, error) {
	callCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := do(callCtx)
	if err == nil {
		return raw, nil
	}

	// Distinguish our own deadline from caller cancellation: only the
	// former is a tier timeout; both abandon the in-flight call.
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, &TimeoutError{Transport: t.Name(), Elapsed: time.Since(start), Err: err}
	}
	return nil, err
}
