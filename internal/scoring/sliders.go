package scoring

import "github.com/RakeshEPC/tshla-medical-sub000/internal/domain"

// sliderRule maps one slider band to per-candidate deltas. Rules fire
// independently; the ledger's slider-stage budget bounds the combined
// contribution per candidate.
type sliderRule struct {
	value    func(domain.Sliders) int
	min, max int
	deltas   map[domain.CandidateID]float64
	reason   string
}

func activity(s domain.Sliders) int       { return s.Activity }
func techComfort(s domain.Sliders) int    { return s.TechComfort }
func simplicity(s domain.Sliders) int     { return s.Simplicity }
func discretion(s domain.Sliders) int     { return s.Discretion }
func timeDedication(s domain.Sliders) int { return s.TimeDedication }

var sliderRules = []sliderRule{
	{
		value: activity, min: 8, max: 10,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateOmnipod5:      3,
			domain.CandidateTwiist:        2,
			domain.CandidateMedtronic780G: 1,
			domain.CandidateTSlimX2:       -2,
		},
		reason: "very active lifestyle favors tubeless and lightweight wear",
	},
	{
		value: activity, min: 1, max: 3,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateTSlimX2:       2,
			domain.CandidateMedtronic780G: 2,
		},
		reason: "low activity removes the tubing-snag concern of tubed pumps",
	},
	{
		value: techComfort, min: 8, max: 10,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateTSlimX2:    3,
			domain.CandidateTwiist:     3,
			domain.CandidateTandemMobi: 2,
		},
		reason: "high tech comfort rewards app-rich, frequently updated devices",
	},
	{
		value: techComfort, min: 1, max: 3,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateILet:          4,
			domain.CandidateOmnipod5:      2,
			domain.CandidateMedtronic780G: 1,
			domain.CandidateTSlimX2:       -2,
			domain.CandidateTwiist:        -2,
		},
		reason: "low tech comfort favors hands-off automation over app depth",
	},
	{
		value: simplicity, min: 8, max: 10,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateILet:          4,
			domain.CandidateOmnipod5:      3,
			domain.CandidateMedtronic780G: -2,
		},
		reason: "simplicity preference favors minimal-interaction devices",
	},
	{
		value: simplicity, min: 1, max: 3,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateMedtronic780G: 3,
			domain.CandidateTSlimX2:       2,
		},
		reason: "control preference favors deep settings and manual overrides",
	},
	{
		value: discretion, min: 8, max: 10,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateTandemMobi:    4,
			domain.CandidateOmnipod5:      3,
			domain.CandidateTwiist:        2,
			domain.CandidateMedtronic780G: -2,
		},
		reason: "discretion preference favors the smallest and least visible wear",
	},
	{
		value: timeDedication, min: 8, max: 10,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateMedtronic780G: 3,
			domain.CandidateTSlimX2:       2,
		},
		reason: "willingness to tune rewards devices with adjustable depth",
	},
	{
		value: timeDedication, min: 1, max: 3,
		deltas: map[domain.CandidateID]float64{
			domain.CandidateILet:     4,
			domain.CandidateOmnipod5: 2,
			domain.CandidateTwiist:   1,
		},
		reason: "minimal-management preference favors set-and-forget automation",
	},
}

// ApplySliders runs the slider rule table against a normalized profile.
// Mid-range values fire no rules: a default slider is neutral.
func ApplySliders(state *domain.ScoreState, sliders domain.Sliders) {
	for _, rule := range sliderRules {
		v := rule.value(sliders)
		if v < rule.min || v > rule.max {
			continue
		}
		// Catalog order keeps budget clamping deterministic.
		for _, id := range domain.CandidateIDs() {
			if delta, ok := rule.deltas[id]; ok {
				state.Apply(domain.StageSliders, id, delta, rule.reason)
			}
		}
	}
}
