// Package scoring implements the staged score composition pipeline: baseline
// seeding, slider rules, feature deltas, bounded semantic and final merges,
// conflict detection, and result assembly. Every stage writes through the
// domain score ledger, so stage budgets hold no matter what the rule tables
// or an AI collaborator produce.
package scoring

import (
	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// ConflictThreshold is the top-two score gap, in points, below which the
// leaders are considered near-tied and a follow-up question is warranted.
const ConflictThreshold = 10.0

// Initialize returns a fresh ledger with every catalog candidate seeded at
// the baseline score. No device ever starts from zero.
func Initialize() *domain.ScoreState {
	state := domain.NewScoreState(domain.CandidateIDs())
	for _, id := range domain.CandidateIDs() {
		state.Set(domain.StageBaseline, id, domain.BaselineScore, "baseline")
	}
	return state
}

// Ranking is one candidate's position in a score-ordered view of the ledger.
type Ranking struct {
	CandidateID domain.CandidateID
	Score       float64
}

// Rank returns the candidates ordered by descending score. Ties break by
// catalog order so identical ledgers always rank identically.
func Rank(state *domain.ScoreState) []Ranking {
	ids := domain.CandidateIDs()
	out := make([]Ranking, 0, len(ids))
	for _, id := range ids {
		out = append(out, Ranking{CandidateID: id, Score: state.Score(id)})
	}
	// Insertion sort keeps the catalog-order tiebreak stable.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
