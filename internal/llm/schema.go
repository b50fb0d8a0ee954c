package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines the JSON structure a collaborator response must conform to.
// The same definition is sent to the provider as its structured-output
// format and enforced locally before any field is trusted.
type Schema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateShape validates raw JSON against the schema. Numeric bounds are
// deliberately not part of the schema: out-of-range points clamp rather
// than reject, so shape is all that is enforced here.
func validateShape(transport string, schema *Schema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &MalformedResponseError{Transport: transport, Raw: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &MalformedResponseError{Transport: transport, Raw: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &MalformedResponseError{Transport: transport, Raw: raw, Err: fmt.Errorf("schema validation: %w", err)}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// assessmentSchema is the response shape shared by the semantic and final
// analysis operations.
func assessmentSchema(name string) *Schema {
	return &Schema{
		Name: name,
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"perCandidate"},
			"properties": map[string]any{
				"perCandidate": map[string]any{
					"type":          "object",
					"minProperties": 1,
					"additionalProperties": map[string]any{
						"type":     "object",
						"required": []string{"points", "reasoning"},
						"properties": map[string]any{
							"points":    map[string]any{"type": "number"},
							"reasoning": map[string]any{"type": "string"},
							"dimensionsCited": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
					},
				},
				"extractedIntents": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"intent"},
						"properties": map[string]any{
							"intent": map[string]any{"type": "string"},
							"dimensions": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"confidence": map[string]any{"type": "number"},
						},
					},
				},
				"dimensionsMissing": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
	}
}

// followUpSchema is the response shape for follow-up question generation.
func followUpSchema() *Schema {
	return &Schema{
		Name: "follow-up-question",
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"question", "dimension", "options"},
			"properties": map[string]any{
				"question":  map[string]any{"type": "string"},
				"rationale": map[string]any{"type": "string"},
				"dimension": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 4,
					"items": map[string]any{
						"type":     "object",
						"required": []string{"id", "label", "deltas"},
						"properties": map[string]any{
							"id":    map[string]any{"type": "string"},
							"label": map[string]any{"type": "string"},
							"deltas": map[string]any{
								"type":                 "object",
								"additionalProperties": map[string]any{"type": "number"},
							},
						},
					},
				},
			},
		},
	}
}
