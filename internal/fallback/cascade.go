// Package fallback implements the deterministic third tier: a pure,
// ordered rule cascade that always produces a recommendation, with no
// network, clock, or randomness. It runs when both AI tiers have failed
// and must never fail itself.
package fallback

import (
	"strings"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/scoring"
)

// rule is one cascade entry. The first rule whose predicate matches the
// profile pins its candidate's score; later rules never fire.
type rule struct {
	matches    func(domain.UserProfile) bool
	candidate  domain.CandidateID
	score      float64
	confidence float64
	reason     string
}

var cascade = []rule{
	{
		matches:    hasFeature(domain.FeatureAppleWatchBolusing),
		candidate:  domain.CandidateTwiist,
		score:      94,
		confidence: 0.85,
		reason:     "only pump with Apple Watch bolusing, which you selected",
	},
	{
		matches:    anyOf(hasFeature(domain.FeatureTubelessDesign), mentionsAny("tubeless", "no tubing", "patch pump", "without tubes")),
		candidate:  domain.CandidateOmnipod5,
		score:      90,
		confidence: 0.8,
		reason:     "the only fully tubeless pump, matching your tubing preference",
	},
	{
		matches:    anyOf(hasFeature(domain.FeatureNoCarbCounting), mentionsAny("carb counting", "no carbs", "hands-off", "hands off")),
		candidate:  domain.CandidateILet,
		score:      88,
		confidence: 0.8,
		reason:     "meal announcements instead of carb counting, matching your preference",
	},
	{
		matches:    anyOf(hasFeature(domain.FeatureTouchscreenControl), sliderAtLeast(techComfort, 8)),
		candidate:  domain.CandidateTSlimX2,
		score:      86,
		confidence: 0.75,
		reason:     "touchscreen interface and frequent software updates suit high tech comfort",
	},
	{
		matches:    anyOf(hasFeature(domain.FeatureSmallestSize), sliderAtLeast(discretion, 8)),
		candidate:  domain.CandidateTandemMobi,
		score:      87,
		confidence: 0.75,
		reason:     "the smallest pump available, matching your discretion preference",
	},
	{
		matches:    anyOf(hasFeature(domain.FeatureAggressiveControl), mentionsAny("tight control", "aggressive", "lowest a1c")),
		candidate:  domain.CandidateMedtronic780G,
		score:      86,
		confidence: 0.75,
		reason:     "most aggressive automated correction algorithm for tight targets",
	},
	{
		matches:    sliderAtLeast(activity, 8),
		candidate:  domain.CandidateOmnipod5,
		score:      86,
		confidence: 0.7,
		reason:     "tubeless wear holds up best through sport and swimming",
	},
	{
		matches:    anyOf(sliderAtMost(techComfort, 3), sliderAtMost(timeDedication, 3)),
		candidate:  domain.CandidateILet,
		score:      85,
		confidence: 0.7,
		reason:     "the most hands-off automation for minimal day-to-day management",
	},
}

// defaultRule fires when nothing in the cascade matches. The catalog's
// default candidate wins on broadest overall fit.
var defaultRule = rule{
	candidate:  domain.DefaultCandidate,
	score:      85,
	confidence: 0.6,
	reason:     "broadest overall fit across comfort, automation, and wearability",
}

// Recommend runs the cascade against a normalized profile and assembles a
// full deterministic-tier result. Slider and feature stages still run, so
// alternatives rank meaningfully; the matched rule then pins the winner
// well above any staged total.
func Recommend(profile domain.UserProfile, requestID string) *domain.RecommendationResult {
	matched := defaultRule
	for _, r := range cascade {
		if r.matches(profile) {
			matched = r
			break
		}
	}

	state := scoring.Initialize()
	scoring.ApplySliders(state, profile.Sliders)
	scoring.ApplyFeatures(state, profile.SelectedFeatures, nil)
	state.Set(domain.StageFallback, matched.candidate, matched.score, matched.reason)

	return scoring.Aggregate(state, requestID, domain.TierDeterministic, matched.confidence, nil)
}

func hasFeature(want domain.FeatureID) func(domain.UserProfile) bool {
	return func(p domain.UserProfile) bool {
		for _, f := range p.SelectedFeatures {
			if f == want {
				return true
			}
		}
		return false
	}
}

func mentionsAny(phrases ...string) func(domain.UserProfile) bool {
	return func(p domain.UserProfile) bool {
		text := strings.ToLower(p.FreeText)
		for _, phrase := range phrases {
			if strings.Contains(text, phrase) {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(domain.UserProfile) bool) func(domain.UserProfile) bool {
	return func(p domain.UserProfile) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

func sliderAtLeast(value func(domain.Sliders) int, bound int) func(domain.UserProfile) bool {
	return func(p domain.UserProfile) bool { return value(p.Sliders) >= bound }
}

func sliderAtMost(value func(domain.Sliders) int, bound int) func(domain.UserProfile) bool {
	return func(p domain.UserProfile) bool { return value(p.Sliders) <= bound }
}

func activity(s domain.Sliders) int       { return s.Activity }
func techComfort(s domain.Sliders) int    { return s.TechComfort }
func timeDedication(s domain.Sliders) int { return s.TimeDedication }
func discretion(s domain.Sliders) int     { return s.Discretion }
