package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for AI collaborator failures. Every error this package
// returns is non-fatal to the request: the orchestrator treats any of them
// as a signal to advance to the next tier.
var (
	// ErrNoTransport indicates a collaborator was built without a transport.
	ErrNoTransport = errors.New("no transport configured")

	// ErrEmptyResponse indicates the provider returned no usable content.
	ErrEmptyResponse = errors.New("empty collaborator response")
)

// TimeoutError indicates an AI call exceeded its tier timeout.
type TimeoutError struct {
	Transport string
	Elapsed   time.Duration
	Err       error
}

// Error returns the formatted timeout with transport context.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s collaborator timed out after %s", e.Transport, e.Elapsed)
}

// Unwrap returns the underlying context error.
func (e *TimeoutError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the provider returned content that failed
// JSON parsing or schema validation. The raw payload is retained for
// diagnostics but never merged into scores.
type MalformedResponseError struct {
	Transport string
	Raw       json.RawMessage
	Err       error
}

// Error returns the formatted validation failure.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s collaborator response: %v", e.Transport, e.Err)
}

// Unwrap returns the underlying parse or schema error.
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// RateLimitError indicates the provider rejected the call with a rate limit.
type RateLimitError struct {
	Transport  string
	RetryAfter time.Duration
	Err        error
}

// Error returns the formatted rate limit with retry guidance when present.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s collaborator rate limited, retry after %s", e.Transport, e.RetryAfter)
	}
	return fmt.Sprintf("%s collaborator rate limited", e.Transport)
}

// Unwrap returns the underlying provider error.
func (e *RateLimitError) Unwrap() error { return e.Err }

// UnavailableError indicates the provider is down, unreachable, or failing
// with server errors.
type UnavailableError struct {
	Transport string
	Err       error
}

// Error returns the formatted availability failure.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s collaborator unavailable: %v", e.Transport, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *UnavailableError) Unwrap() error { return e.Err }

// IsTierFailure reports whether err should advance the orchestrator to the
// next tier. All collaborator failure classes qualify; caller-side context
// cancellation does too, since the in-flight call must be abandoned.
func IsTierFailure(err error) bool {
	if err == nil {
		return false
	}

	var (
		timeout     *TimeoutError
		malformed   *MalformedResponseError
		rateLimited *RateLimitError
		unavailable *UnavailableError
	)
	if errors.As(err, &timeout) || errors.As(err, &malformed) ||
		errors.As(err, &rateLimited) || errors.As(err, &unavailable) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrNoTransport) ||
		errors.Is(err, ErrEmptyResponse)
}

// IsRetryableTransport reports whether err is a transient transport failure
// worth one in-tier retry. Timeouts never retry (the tier budget is spent)
// and malformed responses never retry (the model, not the wire, failed).
func IsRetryableTransport(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}

// RetryAfterHint extracts provider-specified retry timing, or zero.
func RetryAfterHint(err error) time.Duration {
	var rateLimited *RateLimitError
	if errors.As(err, &rateLimited) {
		return rateLimited.RetryAfter
	}
	return 0
}
