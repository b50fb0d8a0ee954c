package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/llm"
)

func TestInitialize_SeedsEveryCandidateAtBaseline(t *testing.T) {
	state := Initialize()

	require.Len(t, state.Scores, 6)
	for _, id := range domain.CandidateIDs() {
		assert.InDelta(t, domain.BaselineScore, state.Score(id), 0.001, "candidate %s", id)
	}
}

func TestApplySliders_MidRangeIsNeutral(t *testing.T) {
	state := Initialize()
	ApplySliders(state, domain.Sliders{Activity: 5, TechComfort: 5, Simplicity: 5, Discretion: 5, TimeDedication: 5})

	for _, id := range domain.CandidateIDs() {
		assert.InDelta(t, domain.BaselineScore, state.Score(id), 0.001, "candidate %s", id)
	}
}

func TestApplySliders_StaysWithinStageBudget(t *testing.T) {
	// Every slider pinned to an extreme fires the maximum number of rules.
	extremes := []domain.Sliders{
		{Activity: 10, TechComfort: 10, Simplicity: 10, Discretion: 10, TimeDedication: 10},
		{Activity: 1, TechComfort: 1, Simplicity: 1, Discretion: 1, TimeDedication: 1},
		{Activity: 10, TechComfort: 1, Simplicity: 10, Discretion: 1, TimeDedication: 10},
	}

	for _, sliders := range extremes {
		state := Initialize()
		ApplySliders(state, sliders)
		for _, id := range domain.CandidateIDs() {
			total := state.StageTotal(domain.StageSliders, id)
			assert.LessOrEqual(t, total, domain.SliderStageCap+0.001,
				"sliders %+v candidate %s", sliders, id)
		}
	}
}

func TestApplySliders_HighTechComfortFavorsTouchscreen(t *testing.T) {
	state := Initialize()
	ApplySliders(state, domain.Sliders{Activity: 5, TechComfort: 9, Simplicity: 5, Discretion: 5, TimeDedication: 5})

	assert.Greater(t, state.Score(domain.CandidateTSlimX2), state.Score(domain.CandidateILet))
}

func TestApplyFeatures_BoostsAndPenalties(t *testing.T) {
	state := Initialize()
	ApplyFeatures(state, []domain.FeatureID{domain.FeatureTubelessDesign}, nil)

	assert.InDelta(t, domain.BaselineScore+8, state.Score(domain.CandidateOmnipod5), 0.001)
	assert.Less(t, state.Score(domain.CandidateTSlimX2), domain.BaselineScore)
}

func TestApplyFeatures_UnknownFeatureSkipped(t *testing.T) {
	state := Initialize()
	ApplyFeatures(state, []domain.FeatureID{"hologram-display"}, nil)

	for _, id := range domain.CandidateIDs() {
		assert.InDelta(t, domain.BaselineScore, state.Score(id), 0.001)
	}
}

func TestApplyFeatures_StaysWithinStageBudget(t *testing.T) {
	var every []domain.FeatureID
	for _, f := range domain.FeatureCatalog() {
		every = append(every, f.ID)
	}

	state := Initialize()
	ApplyFeatures(state, every, nil)
	for _, id := range domain.CandidateIDs() {
		total := state.StageTotal(domain.StageFeatures, id)
		assert.LessOrEqual(t, total, domain.FeatureStageCap+0.001, "candidate %s", id)
		assert.GreaterOrEqual(t, state.Score(id), domain.BaselineScore-domain.FeatureStageCap-0.001)
	}
}

func TestApplySemantic_MergesBoundedAllocations(t *testing.T) {
	state := Initialize()
	ApplySemantic(state, &llm.Response{PerCandidate: map[domain.CandidateID]llm.CandidateAssessment{
		domain.CandidateOmnipod5: {Points: 25, Reasoning: "explicitly wants tubeless"},
		domain.CandidateTwiist:   {Points: 10, Reasoning: "mentions watch bolusing"},
	}})

	assert.InDelta(t, domain.BaselineScore+25, state.Score(domain.CandidateOmnipod5), 0.001)
	assert.InDelta(t, domain.BaselineScore+10, state.Score(domain.CandidateTwiist), 0.001)
	assert.InDelta(t, domain.BaselineScore, state.Score(domain.CandidateILet), 0.001)
}

func TestApplySemantic_NilResponseIsNoOp(t *testing.T) {
	state := Initialize()
	ApplySemantic(state, nil)
	assert.Empty(t, filterStage(state, domain.StageSemantic))
}

func TestDetectConflict(t *testing.T) {
	t.Run("clear winner", func(t *testing.T) {
		state := Initialize()
		state.Apply(domain.StageSemantic, domain.CandidateTwiist, 20, "runaway")

		tied, conflict := DetectConflict(state)
		assert.False(t, conflict)
		assert.Equal(t, []domain.CandidateID{domain.CandidateTwiist}, tied)
	})

	t.Run("near tie triggers conflict", func(t *testing.T) {
		state := Initialize()
		state.Apply(domain.StageSemantic, domain.CandidateTwiist, 20, "lead")
		state.Apply(domain.StageSemantic, domain.CandidateOmnipod5, 15, "close second")

		tied, conflict := DetectConflict(state)
		assert.True(t, conflict)
		assert.Equal(t, []domain.CandidateID{domain.CandidateTwiist, domain.CandidateOmnipod5}, tied)
	})

	t.Run("exact threshold gap is not a conflict", func(t *testing.T) {
		state := Initialize()
		state.Apply(domain.StageSemantic, domain.CandidateTwiist, ConflictThreshold, "lead")

		_, conflict := DetectConflict(state)
		assert.False(t, conflict)
	})
}

func TestApplyAnswer(t *testing.T) {
	question := &domain.FollowUpQuestion{
		Question:  "How important is swimming with the pump on?",
		Dimension: domain.DimWaterResistance,
		Options: []domain.AnswerOption{
			{ID: "daily", Label: "I swim most days", Deltas: map[domain.CandidateID]float64{
				domain.CandidateOmnipod5: 5, domain.CandidateTSlimX2: -5,
			}},
			{ID: "never", Label: "Rarely or never", Deltas: map[domain.CandidateID]float64{
				domain.CandidateTSlimX2: 3,
			}},
		},
	}

	t.Run("applies chosen option deltas", func(t *testing.T) {
		state := Initialize()
		require.NoError(t, ApplyAnswer(state, question, "daily"))

		assert.InDelta(t, domain.BaselineScore+5, state.Score(domain.CandidateOmnipod5), 0.001)
		assert.InDelta(t, domain.BaselineScore-5, state.Score(domain.CandidateTSlimX2), 0.001)
	})

	t.Run("unknown option is a validation error", func(t *testing.T) {
		state := Initialize()
		err := ApplyAnswer(state, question, "sometimes")
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		assert.ErrorIs(t, err, domain.ErrUnknownOption)
	})

	t.Run("nil question is a validation error", func(t *testing.T) {
		state := Initialize()
		assert.True(t, domain.IsValidationError(ApplyAnswer(state, nil, "daily")))
	})
}

func TestAggregate(t *testing.T) {
	state := Initialize()
	state.Apply(domain.StageSemantic, domain.CandidateTwiist, 25, "watch bolusing intent")
	state.Apply(domain.StageFinal, domain.CandidateTwiist, 20, "bolus workflow fit")
	state.Apply(domain.StageSliders, domain.CandidateOmnipod5, 3, "active lifestyle")

	result := Aggregate(state, "11111111-1111-4111-8111-111111111111", domain.TierAIPrimary, 0.8, nil)

	assert.Equal(t, domain.CandidateTwiist, result.TopChoice.CandidateID)
	assert.InDelta(t, 75, result.TopChoice.Score, 0.001)
	assert.Len(t, result.Alternatives, domain.MaxAlternatives)
	assert.Equal(t, domain.CandidateOmnipod5, result.Alternatives[0].CandidateID)
	assert.Equal(t, domain.TierAIPrimary, result.Tier)
	require.NoError(t, result.Validate())

	// Reasons rank by absolute impact and exclude the baseline seed.
	require.NotEmpty(t, result.TopChoice.Reasons)
	assert.Equal(t, "watch bolusing intent", result.TopChoice.Reasons[0].Reason)
	for _, r := range result.TopChoice.Reasons {
		assert.NotEqual(t, domain.StageBaseline, r.Stage)
	}
}

func TestAggregate_ClampsToPresentableRange(t *testing.T) {
	state := Initialize()
	state.Apply(domain.StageSemantic, domain.CandidateOmnipod5, 25, "a")
	state.Apply(domain.StageFinal, domain.CandidateOmnipod5, 20, "b")
	state.Apply(domain.StageSliders, domain.CandidateOmnipod5, 12, "c")
	state.Apply(domain.StageFeatures, domain.CandidateOmnipod5, 8, "d")
	state.Apply(domain.StageConflict, domain.CandidateOmnipod5, 5, "e")
	// Ledger total is 100 exactly; push past it with a direct jump.
	state.Set(domain.StageFallback, domain.CandidateTSlimX2, 140, "impossible")

	result := Aggregate(state, "11111111-1111-4111-8111-111111111111", domain.TierDeterministic, 0.7, nil)

	assert.InDelta(t, domain.ScoreCeiling, result.TopChoice.Score, 0.001)
	for _, alt := range result.Alternatives {
		assert.GreaterOrEqual(t, alt.Score, domain.ScoreFloor)
		assert.LessOrEqual(t, alt.Score, domain.ScoreCeiling)
	}
}

func TestConfidence_GrowsWithLead(t *testing.T) {
	narrow := Initialize()
	narrow.Apply(domain.StageSemantic, domain.CandidateTwiist, 2, "slim lead")

	wide := Initialize()
	wide.Apply(domain.StageSemantic, domain.CandidateTwiist, 25, "big lead")

	assert.Greater(t, Confidence(wide), Confidence(narrow))
	assert.GreaterOrEqual(t, Confidence(narrow), 0.35)
	assert.LessOrEqual(t, Confidence(wide), 0.95)

	flat := Initialize()
	assert.InDelta(t, 0.5, Confidence(flat), 0.001)
}

func TestRank_TiesBreakByCatalogOrder(t *testing.T) {
	state := Initialize()
	ranked := Rank(state)

	require.Len(t, ranked, 6)
	assert.Equal(t, domain.CandidateIDs(), rankedIDs(ranked))
}

func rankedIDs(ranked []Ranking) []domain.CandidateID {
	out := make([]domain.CandidateID, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.CandidateID)
	}
	return out
}

func filterStage(state *domain.ScoreState, stage domain.Stage) []domain.AuditEntry {
	var out []domain.AuditEntry
	for _, e := range state.Trail {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}
