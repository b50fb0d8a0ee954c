package scoring

import (
	"fmt"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// DetectConflict reports whether the current leaders are near-tied. It
// returns every candidate within ConflictThreshold points of the leader;
// a conflict exists when that set has more than one member.
func DetectConflict(state *domain.ScoreState) ([]domain.CandidateID, bool) {
	ranked := Rank(state)
	if len(ranked) == 0 {
		return nil, false
	}

	leader := ranked[0].Score
	tied := []domain.CandidateID{ranked[0].CandidateID}
	for _, r := range ranked[1:] {
		if leader-r.Score >= ConflictThreshold {
			break
		}
		tied = append(tied, r.CandidateID)
	}
	return tied, len(tied) > 1
}

// ApplyAnswer merges the deltas of one chosen follow-up option into the
// ledger. An option id the question does not carry is a caller error.
func ApplyAnswer(state *domain.ScoreState, question *domain.FollowUpQuestion, optionID string) error {
	if question == nil {
		return domain.NewValidationError("followUp", "no follow-up question pending", nil)
	}

	option, ok := question.Option(optionID)
	if !ok {
		return domain.NewValidationError("optionId",
			fmt.Sprintf("option %q is not among the question's choices", optionID),
			domain.ErrUnknownOption)
	}

	reason := "follow-up answer: " + option.Label
	for _, id := range domain.CandidateIDs() {
		if delta, ok := option.Deltas[id]; ok {
			state.Apply(domain.StageConflict, id, delta, reason)
		}
	}
	return nil
}
