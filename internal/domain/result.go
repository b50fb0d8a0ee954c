package domain

import "time"

// Tier labels which attempt path produced a recommendation.
type Tier string

// Attempt tiers in fallback order.
const (
	TierAIPrimary     Tier = "ai-primary"
	TierAISecondary   Tier = "ai-secondary"
	TierDeterministic Tier = "deterministic"
)

// MaxAlternatives bounds how many non-top candidates appear in a result.
const MaxAlternatives = 3

// RankedReason is one audited contribution shown to the caller, ordered by
// absolute impact.
type RankedReason struct {
	Stage  Stage   `json:"stage"`
	Impact float64 `json:"impact"`
	Reason string  `json:"reason"`
}

// ScoredCandidate pairs a candidate with its final clamped score and the
// ranked reasons behind it.
type ScoredCandidate struct {
	CandidateID CandidateID    `json:"candidateId" validate:"required"`
	Name        string         `json:"name"`
	Score       float64        `json:"score" validate:"min=10,max=100"`
	Reasons     []RankedReason `json:"reasons"`
}

// RecommendationResult is the immutable outcome of one recommendation
// request: the top choice, ranked alternatives, the tier that produced it,
// and a confidence indicator. Cached by normalized-profile hash.
type RecommendationResult struct {
	RequestID    string            `json:"requestId" validate:"required,uuid"`
	TopChoice    ScoredCandidate   `json:"topChoice" validate:"required"`
	Alternatives []ScoredCandidate `json:"alternatives" validate:"max=3,dive"`
	Tier         Tier              `json:"tier" validate:"required,oneof=ai-primary ai-secondary deterministic"`
	Confidence   float64           `json:"confidence" validate:"min=0,max=1"`
	FollowUp     *FollowUpQuestion `json:"followUp,omitempty"`
	AssembledAt  time.Time         `json:"assembledAt"`
}

// Validate checks the result against its structural contract before it is
// cached or returned.
func (r *RecommendationResult) Validate() error { return validate.Struct(r) }
