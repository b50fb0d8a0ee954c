package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicTransport is the direct-client transport: it calls the vendor
// API with the official SDK, no gateway in between. Used by the secondary
// AI tier so a gateway outage does not take both AI tiers down.
type AnthropicTransport struct {
	client *anthropic.Client
	model  string
}

// AnthropicConfig configures the direct transport.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// NewAnthropicTransport creates the direct vendor transport.
func NewAnthropicTransport(cfg AnthropicConfig) (*AnthropicTransport, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	return &AnthropicTransport{client: &client, model: model}, nil
}

// Name returns the transport name for error attribution.
func (t *AnthropicTransport) Name() string { return "anthropic-direct" }

// Complete sends one structured-output message and returns the
// schema-validated raw JSON.
func (t *AnthropicTransport) Complete(ctx context.Context, req *CompletionRequest) (json.RawMessage, error) {
	return callWithTimeout(ctx, t, req, func(callCtx context.Context) (json.RawMessage, error) {
		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(t.model),
			MaxTokens: int64(req.MaxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
			},
		}
		if req.System != "" {
			params.System = []anthropic.TextBlockParam{{Text: req.System}}
		}
		if req.Temperature > 0 {
			params.Temperature = anthropic.Float(req.Temperature)
		}
		if req.Schema != nil {
			params.OutputConfig = anthropic.OutputConfigParam{
				Format: anthropic.JSONOutputFormatParam{
					Schema: req.Schema.Definition,
				},
			}
		}

		msg, err := t.client.Messages.New(callCtx, params)
		if err != nil {
			return nil, t.mapError(err)
		}

		content, err := t.extractContent(msg)
		if err != nil {
			return nil, err
		}
		if req.Schema != nil {
			if err := validateShape(t.Name(), req.Schema, content); err != nil {
				return nil, err
			}
		}
		return content, nil
	})
}

// extractContent pulls the text block out of a message response.
func (t *AnthropicTransport) extractContent(msg *anthropic.Message) (json.RawMessage, error) {
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return json.RawMessage(block.Text), nil
		}
	}
	return nil, &MalformedResponseError{Transport: t.Name(), Err: ErrEmptyResponse}
}

// mapError classifies Anthropic SDK errors into the package failure taxonomy.
func (t *AnthropicTransport) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Transport: t.Name(), RetryAfter: 2 * time.Second, Err: err}
		case apiErr.StatusCode >= 500:
			return &UnavailableError{Transport: t.Name(), Err: err}
		}
	}
	return &UnavailableError{Transport: t.Name(), Err: err}
}
