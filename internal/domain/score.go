package domain

import "math"

// Stage labels one step of the scoring pipeline in the audit trail.
type Stage string

// Pipeline stages in execution order.
const (
	StageBaseline Stage = "baseline"
	StageSliders  Stage = "sliders"
	StageFeatures Stage = "features"
	StageSemantic Stage = "semantic"
	StageConflict Stage = "conflict"
	StageFinal    Stage = "final"
	StageFallback Stage = "fallback"
)

// Scoring constants. Every stage's contribution per candidate is bounded by
// its cap; the final score is always clamped to [ScoreFloor, ScoreCeiling].
const (
	// BaselineScore seeds every candidate equally so no device ever starts
	// from zero.
	BaselineScore = 30.0

	// SliderStageCap bounds the absolute slider-stage contribution per
	// candidate.
	SliderStageCap = 12.0

	// FeatureStageCap bounds the absolute feature-stage contribution per
	// candidate.
	FeatureStageCap = 8.0

	// SemanticPointCap bounds the free-text allocation per candidate.
	SemanticPointCap = 25.0

	// ConflictDeltaCap bounds the magnitude of any follow-up option delta.
	ConflictDeltaCap = 5.0

	// FinalBonusCap bounds the final dimensional analysis bonus per candidate.
	FinalBonusCap = 20.0

	// ScoreFloor keeps every candidate above an impossible-looking zero.
	ScoreFloor = 10.0

	// ScoreCeiling is the maximum presentable score.
	ScoreCeiling = 100.0
)

// StageCap returns the per-candidate absolute contribution bound for a stage.
// Baseline and fallback stages set scores directly and are unbounded here.
func StageCap(stage Stage) float64 {
	switch stage {
	case StageSliders:
		return SliderStageCap
	case StageFeatures:
		return FeatureStageCap
	case StageSemantic:
		return SemanticPointCap
	case StageConflict:
		return ConflictDeltaCap
	case StageFinal:
		return FinalBonusCap
	default:
		return math.Inf(1)
	}
}

// ClampScore bounds a final score to [ScoreFloor, ScoreCeiling].
func ClampScore(v float64) float64 {
	if v < ScoreFloor {
		return ScoreFloor
	}
	if v > ScoreCeiling {
		return ScoreCeiling
	}
	return v
}

// AuditEntry records one applied delta in a candidate's audit trail.
type AuditEntry struct {
	Stage     Stage       `json:"stage"`
	Candidate CandidateID `json:"candidate"`
	Delta     float64     `json:"delta"` // as applied, after stage-budget clamping
	Reason    string      `json:"reason"`
}

// ScoreState is the per-request mutable ledger: one running score and an
// ordered audit trail per candidate. It is request-local and never shared
// between goroutines; the orchestrator discards it after the result is
// assembled.
type ScoreState struct {
	Scores map[CandidateID]float64 `json:"scores"`
	Trail  []AuditEntry            `json:"trail"`
}

// NewScoreState creates an empty ledger for the given candidate set.
// Scores are zero until the initializer seeds the baseline.
func NewScoreState(ids []CandidateID) *ScoreState {
	s := &ScoreState{Scores: make(map[CandidateID]float64, len(ids))}
	for _, id := range ids {
		s.Scores[id] = 0
	}
	return s
}

// Apply adds delta to a candidate's score, clamped so the stage's total
// absolute contribution for that candidate never exceeds the stage cap.
// The applied (possibly reduced) delta is recorded in the audit trail and
// returned; a delta with no remaining stage budget applies as zero and is
// not recorded.
func (s *ScoreState) Apply(stage Stage, id CandidateID, delta float64, reason string) float64 {
	if _, ok := s.Scores[id]; !ok {
		return 0
	}

	if limit := StageCap(stage); !math.IsInf(limit, 1) {
		remaining := limit - s.StageTotal(stage, id)
		if remaining <= 0 {
			return 0
		}
		if math.Abs(delta) > remaining {
			if delta < 0 {
				delta = -remaining
			} else {
				delta = remaining
			}
		}
	}
	if delta == 0 {
		return 0
	}

	s.Scores[id] += delta
	s.Trail = append(s.Trail, AuditEntry{Stage: stage, Candidate: id, Delta: delta, Reason: reason})
	return delta
}

// Set overwrites a candidate's score directly, recording the jump in the
// audit trail. Used by the baseline initializer and the deterministic
// fallback, which assign fixed scores rather than deltas.
func (s *ScoreState) Set(stage Stage, id CandidateID, score float64, reason string) {
	if _, ok := s.Scores[id]; !ok {
		return
	}
	delta := score - s.Scores[id]
	s.Scores[id] = score
	s.Trail = append(s.Trail, AuditEntry{Stage: stage, Candidate: id, Delta: delta, Reason: reason})
}

// Score returns the current running score for a candidate.
func (s *ScoreState) Score(id CandidateID) float64 { return s.Scores[id] }

// StageTotal returns the absolute contribution a stage has made to one
// candidate so far.
func (s *ScoreState) StageTotal(stage Stage, id CandidateID) float64 {
	var total float64
	for _, e := range s.Trail {
		if e.Stage == stage && e.Candidate == id {
			total += math.Abs(e.Delta)
		}
	}
	return total
}

// Reasons returns the audit reasons recorded for a candidate in trail order.
func (s *ScoreState) Reasons(id CandidateID) []AuditEntry {
	var out []AuditEntry
	for _, e := range s.Trail {
		if e.Candidate == id {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of the ledger. Follow-up sessions snapshot the
// pre-answer state so a later answer applies against unmodified scores.
func (s *ScoreState) Clone() *ScoreState {
	out := &ScoreState{
		Scores: make(map[CandidateID]float64, len(s.Scores)),
		Trail:  make([]AuditEntry, len(s.Trail)),
	}
	for id, v := range s.Scores {
		out.Scores[id] = v
	}
	copy(out.Trail, s.Trail)
	return out
}
