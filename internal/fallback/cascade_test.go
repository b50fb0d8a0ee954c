package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

const testRequestID = "22222222-2222-4222-8222-222222222222"

func defaultSliders() domain.Sliders {
	return domain.Sliders{Activity: 5, TechComfort: 5, Simplicity: 5, Discretion: 5, TimeDedication: 5}
}

func TestRecommend_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		profile   domain.UserProfile
		candidate domain.CandidateID
		score     float64
	}{
		{
			name: "apple watch bolusing pins twiist",
			profile: domain.UserProfile{
				Sliders:          defaultSliders(),
				SelectedFeatures: []domain.FeatureID{domain.FeatureAppleWatchBolusing},
			},
			candidate: domain.CandidateTwiist,
			score:     94,
		},
		{
			name: "tubeless free text pins omnipod",
			profile: domain.UserProfile{
				Sliders:  defaultSliders(),
				FreeText: "I really want something tubeless for swimming",
			},
			candidate: domain.CandidateOmnipod5,
			score:     90,
		},
		{
			name: "high tech comfort pins tslim",
			profile: domain.UserProfile{
				Sliders: domain.Sliders{Activity: 5, TechComfort: 9, Simplicity: 5, Discretion: 5, TimeDedication: 5},
			},
			candidate: domain.CandidateTSlimX2,
			score:     86,
		},
		{
			name:      "all defaults fall through to omnipod",
			profile:   domain.UserProfile{Sliders: defaultSliders()},
			candidate: domain.CandidateOmnipod5,
			score:     85,
		},
		{
			name: "carb counting aversion pins ilet",
			profile: domain.UserProfile{
				Sliders:  defaultSliders(),
				FreeText: "I am done with carb counting forever",
			},
			candidate: domain.CandidateILet,
			score:     88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Recommend(tt.profile, testRequestID)

			assert.Equal(t, tt.candidate, result.TopChoice.CandidateID)
			assert.InDelta(t, tt.score, result.TopChoice.Score, 0.001)
			assert.Equal(t, domain.TierDeterministic, result.Tier)
			assert.Len(t, result.Alternatives, domain.MaxAlternatives)
			assert.Nil(t, result.FollowUp, "the deterministic tier never asks questions")
			require.NoError(t, result.Validate())
		})
	}
}

func TestRecommend_FirstMatchWins(t *testing.T) {
	// Apple Watch bolusing outranks the tubeless rule even when both match.
	profile := domain.UserProfile{
		Sliders:          defaultSliders(),
		SelectedFeatures: []domain.FeatureID{domain.FeatureTubelessDesign, domain.FeatureAppleWatchBolusing},
		FreeText:         "tubeless please",
	}

	result := Recommend(profile, testRequestID)
	assert.Equal(t, domain.CandidateTwiist, result.TopChoice.CandidateID)
	assert.InDelta(t, 94, result.TopChoice.Score, 0.001)
}

func TestRecommend_IsDeterministic(t *testing.T) {
	profile := domain.UserProfile{
		Sliders:          domain.Sliders{Activity: 9, TechComfort: 2, Simplicity: 8, Discretion: 3, TimeDedication: 2},
		SelectedFeatures: []domain.FeatureID{domain.FeatureWaterproof},
		FreeText:         "active swimmer, keep it simple",
	}

	first := Recommend(profile, testRequestID)
	for i := 0; i < 10; i++ {
		again := Recommend(profile, testRequestID)
		assert.Equal(t, first.TopChoice.CandidateID, again.TopChoice.CandidateID)
		assert.Equal(t, first.TopChoice.Score, again.TopChoice.Score)
		assert.Equal(t, first.Confidence, again.Confidence)
		assert.Equal(t, altIDs(first), altIDs(again))
	}
}

func TestRecommend_ConfidenceNeverLeavesUnitInterval(t *testing.T) {
	profiles := []domain.UserProfile{
		{Sliders: defaultSliders()},
		{Sliders: domain.Sliders{Activity: 10, TechComfort: 10, Simplicity: 10, Discretion: 10, TimeDedication: 10}},
		{Sliders: defaultSliders(), SelectedFeatures: []domain.FeatureID{domain.FeatureAppleWatchBolusing}},
	}
	for _, p := range profiles {
		result := Recommend(p, testRequestID)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func altIDs(r *domain.RecommendationResult) []domain.CandidateID {
	out := make([]domain.CandidateID, 0, len(r.Alternatives))
	for _, a := range r.Alternatives {
		out = append(out, a.CandidateID)
	}
	return out
}
