package domain

// AnswerOption is one selectable answer to a follow-up question, carrying
// the per-candidate deltas applied if the caller chooses it. Every delta
// magnitude is bounded by ConflictDeltaCap.
type AnswerOption struct {
	ID     string                  `json:"id" validate:"required"`
	Label  string                  `json:"label" validate:"required"`
	Deltas map[CandidateID]float64 `json:"deltas" validate:"required,min=1"`
}

// FollowUpQuestion is the single clarifying question generated when top
// candidates score within the conflict threshold. Ephemeral: it lives only
// in the pending session until the caller answers or the session expires.
type FollowUpQuestion struct {
	Question  string         `json:"question" validate:"required"`
	Rationale string         `json:"rationale"`
	Dimension DimensionID    `json:"dimension" validate:"required"`
	Options   []AnswerOption `json:"options" validate:"required,min=2,max=4,dive"`
}

// Validate checks the question's structural contract: 2-4 options, each with
// bounded deltas targeting known candidates.
func (q *FollowUpQuestion) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	for _, opt := range q.Options {
		for id, delta := range opt.Deltas {
			if _, ok := CandidateByID(id); !ok {
				return NewValidationError("options", "option delta targets unknown candidate "+string(id), nil)
			}
			if delta > ConflictDeltaCap || delta < -ConflictDeltaCap {
				return NewValidationError("options", "option delta exceeds bound", nil)
			}
		}
	}
	return nil
}

// Option returns the answer option with the given id.
func (q *FollowUpQuestion) Option(id string) (AnswerOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return AnswerOption{}, false
}
