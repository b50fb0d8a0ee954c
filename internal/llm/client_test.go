package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// stubTransport returns canned JSON or a canned error and records the
// requests it saw.
type stubTransport struct {
	raw      json.RawMessage
	err      error
	requests []*CompletionRequest
}

func (s *stubTransport) Name() string { return "stub" }

func (s *stubTransport) Complete(_ context.Context, req *CompletionRequest) (json.RawMessage, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func analysisRequest(freeText string) *Request {
	profile := domain.UserProfile{FreeText: freeText}
	return BuildRequest(profile.Normalize(), nil)
}

func TestClient_AnalyzeText_EmptyTextSkipsProvider(t *testing.T) {
	stub := &stubTransport{raw: json.RawMessage(`{}`)}
	client := NewClient(stub)

	resp, err := client.AnalyzeText(context.Background(), analysisRequest(""))
	require.NoError(t, err)
	assert.Empty(t, stub.requests, "empty free text must not cost a provider call")

	assert.Len(t, resp.PerCandidate, 6)
	for id, a := range resp.PerCandidate {
		assert.Zero(t, a.Points, "candidate %s", id)
	}
	assert.Empty(t, resp.ExtractedIntents)
	assert.Len(t, resp.DimensionsMissing, len(domain.DimensionCatalog()))
}

func TestClient_AnalyzeText_ClampsExcessivePoints(t *testing.T) {
	// The provider claims 60 points for omnipod-5; the cap is 25.
	stub := &stubTransport{raw: json.RawMessage(`{
		"perCandidate": {
			"omnipod-5": {"points": 60, "reasoning": "tubeless fits", "dimensionsCited": ["tubing-style"]},
			"tslim-x2": {"points": -4, "reasoning": "tubing conflicts", "dimensionsCited": ["tubing-style"]}
		},
		"extractedIntents": [
			{"intent": "wants tubeless", "dimensions": ["tubing-style", "not-a-dimension"], "confidence": 1.7}
		],
		"dimensionsMissing": ["water-resistance", "bogus"]
	}`)}
	client := NewClient(stub)

	resp, err := client.AnalyzeText(context.Background(), analysisRequest("I want something tubeless"))
	require.NoError(t, err)

	assert.InDelta(t, domain.SemanticPointCap, resp.PerCandidate[domain.CandidateOmnipod5].Points, 0.001)
	assert.Zero(t, resp.PerCandidate[domain.CandidateTSlimX2].Points, "negative allocations clamp to zero")

	// Candidates the model skipped are zero-filled, never omitted.
	assert.Len(t, resp.PerCandidate, 6)

	require.Len(t, resp.ExtractedIntents, 1)
	assert.Equal(t, []domain.DimensionID{domain.DimTubingStyle}, resp.ExtractedIntents[0].Dimensions)
	assert.InDelta(t, 1.0, resp.ExtractedIntents[0].Confidence, 0.001)

	assert.Equal(t, []domain.DimensionID{domain.DimWaterResistance}, resp.DimensionsMissing)
}

func TestClient_AnalyzeText_UnknownCandidateDropped(t *testing.T) {
	stub := &stubTransport{raw: json.RawMessage(`{
		"perCandidate": {
			"accu-chek-spirit": {"points": 20, "reasoning": "not in catalog"}
		}
	}`)}
	client := NewClient(stub)

	resp, err := client.AnalyzeText(context.Background(), analysisRequest("anything"))
	require.NoError(t, err)
	_, present := resp.PerCandidate["accu-chek-spirit"]
	assert.False(t, present)
	assert.Len(t, resp.PerCandidate, 6)
}

func TestClient_FinalAnalysis_DiscardsUncitedBonuses(t *testing.T) {
	stub := &stubTransport{raw: json.RawMessage(`{
		"perCandidate": {
			"twiist": {"points": 18, "reasoning": "watch bolusing", "dimensionsCited": ["bolus-workflow"]},
			"omnipod-5": {"points": 15, "reasoning": "no citation given"}
		}
	}`)}
	client := NewClient(stub)

	resp, err := client.FinalAnalysis(context.Background(), analysisRequest("x"))
	require.NoError(t, err)

	assert.InDelta(t, 18, resp.PerCandidate[domain.CandidateTwiist].Points, 0.001)
	assert.Zero(t, resp.PerCandidate[domain.CandidateOmnipod5].Points,
		"a bonus citing no dimension is discarded, not trusted")
}

func TestClient_TransportFailurePropagatesAsTierFailure(t *testing.T) {
	stub := &stubTransport{err: &UnavailableError{Transport: "stub", Err: errors.New("boom")}}
	client := NewClient(stub)

	_, err := client.AnalyzeText(context.Background(), analysisRequest("some text"))
	require.Error(t, err)
	assert.True(t, IsTierFailure(err))
}

func TestClient_GenerateFollowUp(t *testing.T) {
	stub := &stubTransport{raw: json.RawMessage(`{
		"question": "How important is swimming with the pump on?",
		"rationale": "Water resistance separates the leaders",
		"dimension": "water-resistance",
		"options": [
			{"id": "daily", "label": "I swim most days", "deltas": {"omnipod-5": 9, "tslim-x2": -9}},
			{"id": "never", "label": "Rarely", "deltas": {"tslim-x2": 3, "phantom-pump": 4}}
		]
	}`)}
	client := NewClient(stub)

	q, err := client.GenerateFollowUp(context.Background(), analysisRequest("x"))
	require.NoError(t, err)

	assert.Equal(t, domain.DimWaterResistance, q.Dimension)
	require.Len(t, q.Options, 2)

	// Deltas beyond the conflict bound clamp; unknown candidates drop.
	daily, _ := q.Option("daily")
	assert.InDelta(t, domain.ConflictDeltaCap, daily.Deltas[domain.CandidateOmnipod5], 0.001)
	assert.InDelta(t, -domain.ConflictDeltaCap, daily.Deltas[domain.CandidateTSlimX2], 0.001)
	never, _ := q.Option("never")
	_, phantom := never.Deltas["phantom-pump"]
	assert.False(t, phantom)
}

func TestClient_GenerateFollowUp_UnknownDimensionIsMalformed(t *testing.T) {
	stub := &stubTransport{raw: json.RawMessage(`{
		"question": "q", "dimension": "vibes",
		"options": [
			{"id": "a", "label": "a", "deltas": {"omnipod-5": 1}},
			{"id": "b", "label": "b", "deltas": {"tslim-x2": 1}}
		]
	}`)}
	client := NewClient(stub)

	_, err := client.GenerateFollowUp(context.Background(), analysisRequest("x"))
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.True(t, IsTierFailure(err))
}
