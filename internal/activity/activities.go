// Package activity exposes the recommendation engine's operations as
// Temporal activities. Activities stay thin: validation and tier
// orchestration live in the engine, this layer only maps engine errors to
// Temporal retry semantics.
package activity

import (
	"context"
	"errors"
	"log/slog"

	"go.temporal.io/sdk/temporal"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/orchestrator"
)

// Activities holds the recommendation activities and their dependencies.
type Activities struct {
	engine *orchestrator.Engine
	logger *slog.Logger
}

// NewActivities creates the activity set over an assembled engine.
func NewActivities(engine *orchestrator.Engine) *Activities {
	return &Activities{
		engine: engine,
		logger: slog.Default().With("component", "activities"),
	}
}

// RecommendInput is the Recommend activity payload.
type RecommendInput struct {
	Profile domain.UserProfile `json:"profile"`
}

// AnswerInput is the AnswerFollowUp activity payload.
type AnswerInput struct {
	RequestID string `json:"requestId"`
	OptionID  string `json:"optionId"`
}

// Recommend runs the full tier chain for one profile. Input validation
// failures are non-retryable; the engine absorbs everything else, so a
// retryable error here means the process itself is unhealthy.
func (a *Activities) Recommend(ctx context.Context, in RecommendInput) (*domain.RecommendationResult, error) {
	result, err := a.engine.Recommend(ctx, &in.Profile)
	if err != nil {
		if domain.IsValidationError(err) {
			return nil, nonRetryable("Validation", err, "invalid user profile")
		}
		return nil, retryable("Recommend", err, "recommendation failed")
	}
	return result, nil
}

// AnswerFollowUp applies a follow-up answer to its pending session. Unknown
// request ids and unknown options are caller errors and never retried.
func (a *Activities) AnswerFollowUp(ctx context.Context, in AnswerInput) (*domain.RecommendationResult, error) {
	result, err := a.engine.AnswerFollowUp(ctx, in.RequestID, in.OptionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRequest) {
			return nil, nonRetryable("UnknownRequest", err, "no pending follow-up for request")
		}
		if domain.IsValidationError(err) {
			return nil, nonRetryable("Validation", err, "invalid follow-up answer")
		}
		return nil, retryable("AnswerFollowUp", err, "follow-up answer failed")
	}
	return result, nil
}

// nonRetryable wraps an error as a Temporal non-retryable application error,
// for validation failures and other permanent conditions.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps an error as a Temporal retryable application error, for
// transient failures that may succeed with backoff.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationError(msg, tag, cause)
}
