package domain

import (
	"strings"
)

// Slider bounds. Values outside the range clamp to the nearest valid value;
// an absent slider (zero value) defaults to the midpoint.
const (
	SliderMin     = 1
	SliderMax     = 10
	SliderDefault = 5
)

// Profile payload limits enforced as fatal validation, per the propagation
// policy: only malformed input rejects a request.
const (
	MaxSelectedFeatures = 16
	MaxFreeTextLength   = 4000
)

// Sliders holds the five named 1-10 lifestyle preference values.
type Sliders struct {
	Activity       int `json:"activity"`
	TechComfort    int `json:"techComfort"`
	Simplicity     int `json:"simplicity"`
	Discretion     int `json:"discretion"`
	TimeDedication int `json:"timeDedication"`
}

// UserProfile is the per-request patient input: sliders, an ordered set of
// selected feature ids, and an optional free-text narrative.
type UserProfile struct {
	Sliders          Sliders     `json:"sliders"`
	SelectedFeatures []FeatureID `json:"selectedFeatures"`
	FreeText         string      `json:"freeText"`
}

// Validate checks the structural payload limits. Slider range violations are
// not fatal (they clamp during normalization); oversized payloads are.
func (p *UserProfile) Validate() error {
	if p == nil {
		return &ValidationError{Message: "user profile is nil", Cause: ErrNilProfile}
	}
	if len(p.SelectedFeatures) > MaxSelectedFeatures {
		return NewValidationError("selectedFeatures", "too many selected features", nil)
	}
	if len(p.FreeText) > MaxFreeTextLength {
		return NewValidationError("freeText", "free text exceeds maximum length", nil)
	}
	for _, id := range p.SelectedFeatures {
		if id == "" {
			return NewValidationError("selectedFeatures", "empty feature id", nil)
		}
	}
	return nil
}

// Normalize returns a canonical copy: sliders clamped (absent values default
// to the midpoint), feature ids deduplicated preserving selection order, and
// free text trimmed. Cache keys and the deterministic fallback both operate
// on the normalized form.
func (p *UserProfile) Normalize() UserProfile {
	out := UserProfile{
		Sliders: Sliders{
			Activity:       clampSlider(p.Sliders.Activity),
			TechComfort:    clampSlider(p.Sliders.TechComfort),
			Simplicity:     clampSlider(p.Sliders.Simplicity),
			Discretion:     clampSlider(p.Sliders.Discretion),
			TimeDedication: clampSlider(p.Sliders.TimeDedication),
		},
		FreeText: strings.TrimSpace(p.FreeText),
	}

	seen := make(map[FeatureID]struct{}, len(p.SelectedFeatures))
	for _, id := range p.SelectedFeatures {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out.SelectedFeatures = append(out.SelectedFeatures, id)
	}
	return out
}

// HasFreeText reports whether the profile carries a non-empty narrative.
func (p *UserProfile) HasFreeText() bool {
	return strings.TrimSpace(p.FreeText) != ""
}

// clampSlider maps a raw slider value to the valid range. Zero means the
// slider was absent from the payload and takes the default.
func clampSlider(v int) int {
	switch {
	case v == 0:
		return SliderDefault
	case v < SliderMin:
		return SliderMin
	case v > SliderMax:
		return SliderMax
	default:
		return v
	}
}
