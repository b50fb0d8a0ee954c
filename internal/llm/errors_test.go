package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTierFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "timeout", err: &TimeoutError{Transport: "t", Elapsed: time.Second}, want: true},
		{name: "malformed", err: &MalformedResponseError{Transport: "t"}, want: true},
		{name: "rate limited", err: &RateLimitError{Transport: "t"}, want: true},
		{name: "unavailable", err: &UnavailableError{Transport: "t"}, want: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "no transport", err: ErrNoTransport, want: true},
		{name: "empty response", err: ErrEmptyResponse, want: true},
		{name: "wrapped unavailable", err: fmt.Errorf("tier 2: %w", &UnavailableError{Transport: "t"}), want: true},
		{name: "unrelated", err: errors.New("disk full"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTierFailure(tt.err))
		})
	}
}

func TestIsRetryableTransport(t *testing.T) {
	assert.True(t, IsRetryableTransport(&UnavailableError{Transport: "t"}))

	// Timeouts, malformed payloads and rate limits are not worth an
	// immediate in-tier retry; the orchestrator falls back instead.
	assert.False(t, IsRetryableTransport(&TimeoutError{Transport: "t"}))
	assert.False(t, IsRetryableTransport(&MalformedResponseError{Transport: "t"}))
	assert.False(t, IsRetryableTransport(&RateLimitError{Transport: "t"}))
	assert.False(t, IsRetryableTransport(nil))
}

func TestRetryAfterHint(t *testing.T) {
	assert.Equal(t, 3*time.Second, RetryAfterHint(&RateLimitError{Transport: "t", RetryAfter: 3 * time.Second}))
	assert.Zero(t, RetryAfterHint(&UnavailableError{Transport: "t"}))
	assert.Zero(t, RetryAfterHint(nil))
}
