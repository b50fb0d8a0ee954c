package scoring

import (
	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/llm"
)

// ApplySemantic merges a free-text analysis into the ledger. The
// collaborator has already clamped each allocation; the semantic stage
// budget bounds it again so the ledger never depends on upstream manners.
func ApplySemantic(state *domain.ScoreState, resp *llm.Response) {
	applyAssessment(state, domain.StageSemantic, resp, "free-text analysis")
}

// ApplyFinal merges the comprehensive final-analysis bonuses into the
// ledger under the final stage budget.
func ApplyFinal(state *domain.ScoreState, resp *llm.Response) {
	applyAssessment(state, domain.StageFinal, resp, "final dimensional analysis")
}

func applyAssessment(state *domain.ScoreState, stage domain.Stage, resp *llm.Response, fallbackReason string) {
	if resp == nil {
		return
	}
	for _, id := range domain.CandidateIDs() {
		assessment, ok := resp.PerCandidate[id]
		if !ok || assessment.Points == 0 {
			continue
		}
		reason := assessment.Reasoning
		if reason == "" {
			reason = fallbackReason
		}
		state.Apply(stage, id, assessment.Points, reason)
	}
}
