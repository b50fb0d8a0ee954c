package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// Client implements Collaborator over one Transport. It owns the trust
// boundary: every numeric field in a provider response is validated and
// clamped here before anything downstream sees it.
type Client struct {
	transport   Transport
	maxTokens   int
	temperature float64
	callTimeout time.Duration
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCallTimeout sets the per-call timeout applied to every transport call.
func WithCallTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.callTimeout = d }
}

// WithMaxTokens overrides the response token budget.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// NewClient creates a collaborator over the given transport.
func NewClient(t Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport:   t,
		maxTokens:   2048,
		temperature: 0.2,
		logger:      slog.Default().With("component", "collaborator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeText maps free text to a bounded per-candidate point allocation.
// Empty free text short-circuits to a zero allocation: that is a valid
// outcome, not an error, and costs no provider call.
func (c *Client) AnalyzeText(ctx context.Context, req *Request) (*Response, error) {
	if c.transport == nil {
		return nil, ErrNoTransport
	}

	if req.Profile.FreeText == "" {
		return emptyAnalysis(), nil
	}

	raw, err := c.transport.Complete(ctx, &CompletionRequest{
		Operation:   OpSemanticAnalysis,
		System:      systemPrompt,
		Prompt:      buildSemanticPrompt(req),
		Schema:      assessmentSchema("semantic-analysis"),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Timeout:     c.callTimeout,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.parseAssessment(raw, domain.SemanticPointCap, false)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// FinalAnalysis produces the comprehensive bounded re-scoring. Assessments
// that cite no known dimension are zeroed rather than trusted.
func (c *Client) FinalAnalysis(ctx context.Context, req *Request) (*Response, error) {
	if c.transport == nil {
		return nil, ErrNoTransport
	}

	raw, err := c.transport.Complete(ctx, &CompletionRequest{
		Operation:   OpFinalAnalysis,
		System:      systemPrompt,
		Prompt:      buildFinalPrompt(req),
		Schema:      assessmentSchema("final-analysis"),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Timeout:     c.callTimeout,
	})
	if err != nil {
		return nil, err
	}

	return c.parseAssessment(raw, domain.FinalBonusCap, true)
}

// GenerateFollowUp produces one clarifying question for near-tied
// candidates, with every option delta clamped to the conflict bound.
func (c *Client) GenerateFollowUp(ctx context.Context, req *Request) (*domain.FollowUpQuestion, error) {
	if c.transport == nil {
		return nil, ErrNoTransport
	}

	raw, err := c.transport.Complete(ctx, &CompletionRequest{
		Operation:   OpFollowUp,
		System:      systemPrompt,
		Prompt:      buildFollowUpPrompt(req),
		Schema:      followUpSchema(),
		MaxTokens:   1024,
		Temperature: c.temperature,
		Timeout:     c.callTimeout,
	})
	if err != nil {
		return nil, err
	}

	return c.parseFollowUp(raw)
}

// parseAssessment converts validated raw JSON into a sanitized Response:
// unknown candidates dropped, missing candidates zero-filled, points clamped
// to [0, cap], citations and intents restricted to catalog dimensions.
func (c *Client) parseAssessment(raw json.RawMessage, pointCap float64, requireCitation bool) (*Response, error) {
	var wire struct {
		PerCandidate map[string]struct {
			Points          float64  `json:"points"`
			Reasoning       string   `json:"reasoning"`
			DimensionsCited []string `json:"dimensionsCited"`
		} `json:"perCandidate"`
		ExtractedIntents []struct {
			Intent     string   `json:"intent"`
			Dimensions []string `json:"dimensions"`
			Confidence float64  `json:"confidence"`
		} `json:"extractedIntents"`
		DimensionsMissing []string `json:"dimensionsMissing"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &MalformedResponseError{Transport: c.transport.Name(), Raw: raw, Err: err}
	}

	resp := &Response{PerCandidate: make(map[domain.CandidateID]CandidateAssessment, len(domain.Candidates()))}

	for id, wa := range wire.PerCandidate {
		cid := domain.CandidateID(id)
		if _, ok := domain.CandidateByID(cid); !ok {
			c.logger.Warn("collaborator scored unknown candidate", "candidate", id)
			continue
		}

		cited := knownDimensions(wa.DimensionsCited)
		points := clampPoints(wa.Points, pointCap)
		if requireCitation && len(cited) == 0 {
			c.logger.Warn("collaborator bonus cited no dimensions, discarding",
				"candidate", id, "points", wa.Points)
			points = 0
		}

		resp.PerCandidate[cid] = CandidateAssessment{
			Points:          points,
			Reasoning:       wa.Reasoning,
			DimensionsCited: cited,
		}
	}

	// Zero-fill candidates the model skipped; absence is not signal.
	for _, cand := range domain.Candidates() {
		if _, ok := resp.PerCandidate[cand.ID]; !ok {
			resp.PerCandidate[cand.ID] = CandidateAssessment{}
		}
	}

	for _, wi := range wire.ExtractedIntents {
		if wi.Intent == "" {
			continue
		}
		resp.ExtractedIntents = append(resp.ExtractedIntents, Intent{
			Intent:     wi.Intent,
			Dimensions: knownDimensions(wi.Dimensions),
			Confidence: clampPoints(wi.Confidence, 1),
		})
	}
	resp.DimensionsMissing = knownDimensions(wire.DimensionsMissing)

	return resp, nil
}

// parseFollowUp converts validated raw JSON into a domain question with
// bounded option deltas.
func (c *Client) parseFollowUp(raw json.RawMessage) (*domain.FollowUpQuestion, error) {
	var wire struct {
		Question  string `json:"question"`
		Rationale string `json:"rationale"`
		Dimension string `json:"dimension"`
		Options   []struct {
			ID     string             `json:"id"`
			Label  string             `json:"label"`
			Deltas map[string]float64 `json:"deltas"`
		} `json:"options"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &MalformedResponseError{Transport: c.transport.Name(), Raw: raw, Err: err}
	}

	if !domain.KnownDimension(domain.DimensionID(wire.Dimension)) {
		return nil, &MalformedResponseError{
			Transport: c.transport.Name(), Raw: raw,
			Err: fmt.Errorf("question targets unknown dimension %q", wire.Dimension),
		}
	}

	q := &domain.FollowUpQuestion{
		Question:  wire.Question,
		Rationale: wire.Rationale,
		Dimension: domain.DimensionID(wire.Dimension),
	}
	for _, wo := range wire.Options {
		deltas := make(map[domain.CandidateID]float64, len(wo.Deltas))
		for id, delta := range wo.Deltas {
			cid := domain.CandidateID(id)
			if _, ok := domain.CandidateByID(cid); !ok {
				c.logger.Warn("follow-up option targets unknown candidate", "candidate", id)
				continue
			}
			deltas[cid] = clampDelta(delta, domain.ConflictDeltaCap)
		}
		if len(deltas) == 0 {
			continue
		}
		q.Options = append(q.Options, domain.AnswerOption{ID: wo.ID, Label: wo.Label, Deltas: deltas})
	}

	if err := q.Validate(); err != nil {
		return nil, &MalformedResponseError{Transport: c.transport.Name(), Raw: raw, Err: err}
	}
	return q, nil
}

// emptyAnalysis is the zero allocation returned for empty free text.
func emptyAnalysis() *Response {
	resp := &Response{PerCandidate: make(map[domain.CandidateID]CandidateAssessment)}
	for _, cand := range domain.Candidates() {
		resp.PerCandidate[cand.ID] = CandidateAssessment{}
	}
	for _, dim := range domain.DimensionCatalog() {
		resp.DimensionsMissing = append(resp.DimensionsMissing, dim.ID)
	}
	return resp
}

// clampPoints bounds an untrusted AI value to [0, bound].
func clampPoints(v, bound float64) float64 {
	if v < 0 {
		return 0
	}
	if v > bound {
		return bound
	}
	return v
}

// clampDelta bounds an untrusted AI delta to [-bound, bound].
func clampDelta(v, bound float64) float64 {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}

// knownDimensions filters a raw id list down to catalog dimensions.
func knownDimensions(raw []string) []domain.DimensionID {
	var out []domain.DimensionID
	for _, id := range raw {
		dim := domain.DimensionID(id)
		if domain.KnownDimension(dim) {
			out = append(out, dim)
		}
	}
	return out
}
