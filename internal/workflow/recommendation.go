// Package workflow defines the Temporal workflows that front the
// recommendation activities. Control flow here is deterministic; everything
// with a clock, a network, or a ledger runs inside an activity.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/activity"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// activityTimeout bounds one activity attempt. It covers the worst case of
// both AI tiers timing out back to back before the deterministic tier.
const activityTimeout = 90 * time.Second

// RecommendationWorkflow runs one recommendation request end to end. The
// engine inside the activity already absorbs tier failures, so the retry
// policy only papers over worker-level disruptions.
func RecommendationWorkflow(ctx workflow.Context, in activity.RecommendInput) (*domain.RecommendationResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "recommendation.v", workflow.DefaultVersion, currentVersion)

	if err := in.Profile.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError("invalid user profile", "Validation", err)
	}

	ctx = workflow.WithActivityOptions(ctx, activityOptions())

	var activities *activity.Activities
	var result domain.RecommendationResult
	if err := workflow.ExecuteActivity(ctx, activities.Recommend, in).Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FollowUpWorkflow applies one follow-up answer to its pending session.
func FollowUpWorkflow(ctx workflow.Context, in activity.AnswerInput) (*domain.RecommendationResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "followup.v", workflow.DefaultVersion, currentVersion)

	if in.RequestID == "" || in.OptionID == "" {
		return nil, temporal.NewNonRetryableApplicationError(
			"requestId and optionId are required", "Validation", nil)
	}

	ctx = workflow.WithActivityOptions(ctx, activityOptions())

	var activities *activity.Activities
	var result domain.RecommendationResult
	if err := workflow.ExecuteActivity(ctx, activities.AnswerFollowUp, in).Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func activityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: activityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
}
