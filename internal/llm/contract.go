// Package llm is the AI collaborator boundary of the recommendation engine.
// It owns the request/response wire contract, prompt construction, strict
// response-shape validation, and the clamping applied before any
// AI-produced number is merged into a score ledger.
//
// Every failure this package surfaces is non-fatal to a recommendation
// request: the tier orchestrator treats it as a signal to fall back.
package llm

import (
	"context"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// Operation names the collaborator call being made.
type Operation string

// Collaborator operations.
const (
	OpSemanticAnalysis Operation = "semantic-analysis"
	OpFinalAnalysis    Operation = "final-analysis"
	OpFollowUp         Operation = "follow-up-question"
)

// ProfilePayload is the profile section of the collaborator request.
type ProfilePayload struct {
	Sliders          domain.Sliders     `json:"sliders"`
	SelectedFeatures []domain.FeatureID `json:"selectedFeatures"`
	FreeText         string             `json:"freeText"`
}

// CandidateStrengths summarizes one candidate for prompt framing.
type CandidateStrengths struct {
	Name      string                                 `json:"name"`
	Summary   string                                 `json:"summary"`
	Strengths map[domain.DimensionID]domain.Strength `json:"strengths"`
}

// StageContext carries the partially-assembled pipeline state, for
// informational framing only: the collaborator must not duplicate deltas
// already applied by earlier stages.
type StageContext struct {
	AppliedStages     []domain.Stage                 `json:"appliedStages,omitempty"`
	CurrentScores     map[domain.CandidateID]float64 `json:"currentScores,omitempty"`
	ExtractedIntents  []Intent                       `json:"extractedIntents,omitempty"`
	DimensionsMissing []domain.DimensionID           `json:"dimensionsMissing,omitempty"`
	TiedCandidates    []domain.CandidateID           `json:"tiedCandidates,omitempty"`
	FollowUpAnswer    string                         `json:"followUpAnswer,omitempty"`
}

// Request is the collaborator request contract, used identically by the
// semantic and final analysis calls with different stage contexts.
type Request struct {
	Profile            ProfilePayload                            `json:"profile"`
	DimensionCatalog   []domain.Dimension                        `json:"dimensionCatalog"`
	CandidateStrengths map[domain.CandidateID]CandidateStrengths `json:"candidateStrengths"`
	StageContext       *StageContext                             `json:"stageContext,omitempty"`
}

// CandidateAssessment is the per-candidate section of a collaborator
// response. Points are untrusted until clamped by the receiving stage.
type CandidateAssessment struct {
	Points          float64              `json:"points"`
	Reasoning       string               `json:"reasoning"`
	DimensionsCited []domain.DimensionID `json:"dimensionsCited"`
}

// Intent is one extracted free-text intent mapped to dimension ids.
type Intent struct {
	Intent     string               `json:"intent"`
	Dimensions []domain.DimensionID `json:"dimensions"`
	Confidence float64              `json:"confidence"`
}

// Response is the collaborator response contract after shape validation
// and clamping.
type Response struct {
	PerCandidate      map[domain.CandidateID]CandidateAssessment `json:"perCandidate"`
	ExtractedIntents  []Intent                                   `json:"extractedIntents"`
	DimensionsMissing []domain.DimensionID                       `json:"dimensionsMissing"`
}

// Collaborator is the AI boundary consumed by the scoring pipeline. A tier
// owns one Collaborator; any returned error advances the orchestrator to
// the next tier.
type Collaborator interface {
	// AnalyzeText maps the free-text narrative to a bounded per-candidate
	// point allocation with extracted intents. Empty free text returns a
	// zero allocation without calling the provider.
	AnalyzeText(ctx context.Context, req *Request) (*Response, error)

	// FinalAnalysis produces the comprehensive bounded re-scoring, each
	// bonus citing at least one dimension id.
	FinalAnalysis(ctx context.Context, req *Request) (*Response, error)

	// GenerateFollowUp produces one multiple-choice clarifying question
	// targeting an unaddressed dimension among the tied candidates.
	GenerateFollowUp(ctx context.Context, req *Request) (*domain.FollowUpQuestion, error)
}

// BuildRequest assembles the collaborator request for a normalized profile.
func BuildRequest(profile domain.UserProfile, stageCtx *StageContext) *Request {
	strengths := make(map[domain.CandidateID]CandidateStrengths, len(domain.Candidates()))
	for _, c := range domain.Candidates() {
		strengths[c.ID] = CandidateStrengths{Name: c.Name, Summary: c.Summary, Strengths: c.Strengths}
	}
	return &Request{
		Profile: ProfilePayload{
			Sliders:          profile.Sliders,
			SelectedFeatures: profile.SelectedFeatures,
			FreeText:         profile.FreeText,
		},
		DimensionCatalog:   domain.DimensionCatalog(),
		CandidateStrengths: strengths,
		StageContext:       stageCtx,
	}
}
