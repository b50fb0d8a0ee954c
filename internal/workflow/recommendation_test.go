package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/activity"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

func validInput() activity.RecommendInput {
	return activity.RecommendInput{Profile: domain.UserProfile{
		Sliders:  domain.Sliders{Activity: 5, TechComfort: 5, Simplicity: 5, Discretion: 5, TimeDedication: 5},
		FreeText: "tubeless please",
	}}
}

func scriptedResult() *domain.RecommendationResult {
	return &domain.RecommendationResult{
		RequestID: "44444444-4444-4444-8444-444444444444",
		TopChoice: domain.ScoredCandidate{
			CandidateID: domain.CandidateOmnipod5,
			Name:        domain.CandidateName(domain.CandidateOmnipod5),
			Score:       90,
		},
		Tier:        domain.TierAIPrimary,
		Confidence:  0.8,
		AssembledAt: time.Now().UTC(),
	}
}

func TestRecommendationWorkflow(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}

	t.Run("returns the activity result", func(t *testing.T) {
		env := testSuite.NewTestWorkflowEnvironment()
		defer env.AssertExpectations(t)

		var activities *activity.Activities
		env.RegisterActivity(activities.Recommend)
		env.OnActivity(activities.Recommend, mock.Anything, mock.Anything).
			Return(scriptedResult(), nil)

		env.ExecuteWorkflow(RecommendationWorkflow, validInput())

		require.True(t, env.IsWorkflowCompleted())
		require.NoError(t, env.GetWorkflowError())

		var result domain.RecommendationResult
		require.NoError(t, env.GetWorkflowResult(&result))
		assert.Equal(t, domain.CandidateOmnipod5, result.TopChoice.CandidateID)
		assert.Equal(t, domain.TierAIPrimary, result.Tier)
	})

	t.Run("invalid profile fails before any activity", func(t *testing.T) {
		env := testSuite.NewTestWorkflowEnvironment()
		defer env.AssertExpectations(t)

		in := validInput()
		in.Profile.SelectedFeatures = make([]domain.FeatureID, domain.MaxSelectedFeatures+1)
		for i := range in.Profile.SelectedFeatures {
			in.Profile.SelectedFeatures[i] = domain.FeatureWaterproof
		}

		env.ExecuteWorkflow(RecommendationWorkflow, in)

		require.True(t, env.IsWorkflowCompleted())
		err := env.GetWorkflowError()
		require.Error(t, err)

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Validation", appErr.Type())
		assert.True(t, appErr.NonRetryable())
	})
}

func TestFollowUpWorkflow(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}

	t.Run("returns the activity result", func(t *testing.T) {
		env := testSuite.NewTestWorkflowEnvironment()
		defer env.AssertExpectations(t)

		var activities *activity.Activities
		env.RegisterActivity(activities.AnswerFollowUp)
		env.OnActivity(activities.AnswerFollowUp, mock.Anything, mock.Anything).
			Return(scriptedResult(), nil)

		env.ExecuteWorkflow(FollowUpWorkflow, activity.AnswerInput{
			RequestID: "44444444-4444-4444-8444-444444444444",
			OptionID:  "yes",
		})

		require.True(t, env.IsWorkflowCompleted())
		require.NoError(t, env.GetWorkflowError())
	})

	t.Run("missing ids fail validation", func(t *testing.T) {
		env := testSuite.NewTestWorkflowEnvironment()
		defer env.AssertExpectations(t)

		env.ExecuteWorkflow(FollowUpWorkflow, activity.AnswerInput{})

		require.True(t, env.IsWorkflowCompleted())
		err := env.GetWorkflowError()
		require.Error(t, err)

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Validation", appErr.Type())
	})
}
