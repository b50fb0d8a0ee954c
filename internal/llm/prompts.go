package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

const systemPrompt = `You are a clinical decision-support assistant comparing six insulin pumps
for a patient. You never invent devices or dimensions: you only reference the
candidate ids and dimension ids provided in the request payload. You respond
with JSON only, conforming exactly to the requested schema.`

// buildSemanticPrompt frames the free-text analysis call. The already-applied
// slider and feature deltas appear for context only; the instructions forbid
// re-counting them.
func buildSemanticPrompt(req *Request) string {
	var b strings.Builder

	b.WriteString("Analyze the patient's free-text narrative against the pump catalog.\n\n")
	writePayload(&b, req)

	fmt.Fprintf(&b, `
Instructions:
- Allocate between 0 and %.0f points per candidate based ONLY on the free text.
- Slider and feature preferences are already scored; do not duplicate them.
- For each candidate give a short reasoning citing the dimension ids that apply.
- List every distinct intent you extract from the text with its matched dimension ids
  and your confidence in the match (0 to 1).
- List the dimension ids the text does not address at all in "dimensionsMissing".
`, domain.SemanticPointCap)

	return b.String()
}

// buildFinalPrompt frames the comprehensive dimensional re-scoring call.
func buildFinalPrompt(req *Request) string {
	var b strings.Builder

	b.WriteString("Perform the final dimensional comparison across all six pumps.\n\n")
	writePayload(&b, req)

	fmt.Fprintf(&b, `
Instructions:
- Award each candidate a bonus between 0 and %.0f points reflecting how well its
  dimension matrix fits everything known about this patient.
- Every bonus MUST cite at least one dimension id in "dimensionsCited"; an
  assessment citing none will be discarded.
- In the top candidate's reasoning, name the most decisive dimensions.
`, domain.FinalBonusCap)

	return b.String()
}

// buildFollowUpPrompt frames the clarifying-question call for near-tied
// candidates.
func buildFollowUpPrompt(req *Request) string {
	var b strings.Builder

	b.WriteString("The top candidates are too close to call. Generate ONE clarifying question.\n\n")
	writePayload(&b, req)

	fmt.Fprintf(&b, `
Instructions:
- Ask a single multiple-choice question (2 to 4 options) that separates the tied
  candidates listed in stageContext.tiedCandidates.
- Target a dimension id from stageContext.dimensionsMissing when any is given;
  otherwise pick the dimension that best separates the tied candidates.
- Each option carries per-candidate score deltas; no delta may exceed %.0f in
  magnitude, and options should cut in different directions.
`, domain.ConflictDeltaCap)

	return b.String()
}

// writePayload embeds the request contract as JSON so prompt content and
// wire contract can never drift apart.
func writePayload(b *strings.Builder, req *Request) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		// The contract is plain data; marshaling only fails on programmer error.
		payload = []byte("{}")
	}
	b.WriteString("Request payload:\n")
	b.Write(payload)
	b.WriteString("\n")
}
