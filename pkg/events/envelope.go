// Package events provides the event envelope and sink used to publish
// recommendation lifecycle events for audit and analytics projections.
// Event emission is always best effort: a sink failure never fails the
// operation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the recommendation engine.
const (
	TypeRecommendationAssembled = "recommendation.assembled"
	TypeFollowUpIssued          = "recommendation.followup_issued"
	TypeFollowUpAnswered        = "recommendation.followup_answered"
	TypeCacheHit                = "recommendation.cache_hit"
)

// Envelope wraps a lifecycle event with routing and correlation metadata.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type routes the event, e.g. "recommendation.assembled".
	Type string `json:"type"`

	// Source names the emitting component.
	Source string `json:"source"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// RequestID correlates the event with its recommendation request.
	RequestID string `json:"requestId"`

	// Payload carries the type-specific event data.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope builds an envelope around a payload. A payload that cannot
// marshal is recorded as an empty payload rather than dropped: correlation
// metadata alone is still worth emitting.
func NewEnvelope(eventType, source, requestID string, payload any) Envelope {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = nil
	}
	return Envelope{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Payload:   raw,
	}
}

// EventSink receives lifecycle events. Implementations must be safe for
// concurrent use.
type EventSink interface {
	Append(ctx context.Context, event Envelope) error
}

// NoOpEventSink discards every event. The default when no projection
// pipeline is deployed.
type NoOpEventSink struct{}

// NewNoOpEventSink creates a sink that drops all events.
func NewNoOpEventSink() *NoOpEventSink { return &NoOpEventSink{} }

// Append discards the event.
func (*NoOpEventSink) Append(context.Context, Envelope) error { return nil }
