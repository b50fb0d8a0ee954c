package scoring

import (
	"math"
	"time"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// maxRankedReasons bounds how many audit contributions a candidate surfaces
// in the assembled result.
const maxRankedReasons = 4

// Confidence derives a confidence indicator from the ledger: the wider the
// lead, the more confident the recommendation. Bounded to [0.35, 0.95] so an
// AI-backed result never claims certainty and never looks like a coin flip.
func Confidence(state *domain.ScoreState) float64 {
	ranked := Rank(state)
	if len(ranked) < 2 {
		return 0.5
	}
	gap := ranked[0].Score - ranked[1].Score
	c := 0.5 + gap/50
	if c < 0.35 {
		c = 0.35
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// Aggregate assembles the immutable result from the ledger: scores clamped
// to the presentable range, candidates ranked, the top choice split from at
// most MaxAlternatives runners-up, and each candidate's highest-impact audit
// reasons attached.
func Aggregate(state *domain.ScoreState, requestID string, tier domain.Tier,
	confidence float64, followUp *domain.FollowUpQuestion,
) *domain.RecommendationResult {
	ranked := Rank(state)

	scored := make([]domain.ScoredCandidate, 0, len(ranked))
	for _, r := range ranked {
		scored = append(scored, domain.ScoredCandidate{
			CandidateID: r.CandidateID,
			Name:        domain.CandidateName(r.CandidateID),
			Score:       domain.ClampScore(r.Score),
			Reasons:     rankedReasons(state, r.CandidateID),
		})
	}

	result := &domain.RecommendationResult{
		RequestID:   requestID,
		TopChoice:   scored[0],
		Tier:        tier,
		Confidence:  confidence,
		FollowUp:    followUp,
		AssembledAt: time.Now().UTC(),
	}
	if n := len(scored) - 1; n > 0 {
		if n > domain.MaxAlternatives {
			n = domain.MaxAlternatives
		}
		result.Alternatives = scored[1 : 1+n]
	}
	return result
}

// rankedReasons converts a candidate's audit trail into its presentable
// reasons, ordered by absolute impact. Baseline entries carry no signal and
// are dropped.
func rankedReasons(state *domain.ScoreState, id domain.CandidateID) []domain.RankedReason {
	var out []domain.RankedReason
	for _, e := range state.Reasons(id) {
		if e.Stage == domain.StageBaseline {
			continue
		}
		out = append(out, domain.RankedReason{Stage: e.Stage, Impact: e.Delta, Reason: e.Reason})
	}

	// Stable insertion sort by |impact|; trail order breaks ties.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && math.Abs(out[j].Impact) > math.Abs(out[j-1].Impact); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > maxRankedReasons {
		out = out[:maxRankedReasons]
	}
	return out
}
