package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITransport is the server-mediated transport: it speaks the OpenAI
// chat-completions API, typically through an organization-hosted gateway
// configured via BaseURL. Used by the primary AI tier.
type OpenAITransport struct {
	client *openai.Client
	model  string
}

// OpenAIConfig configures the server-mediated transport.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // gateway endpoint; empty uses the vendor default
	Model   string
}

// NewOpenAITransport creates the server-mediated transport.
func NewOpenAITransport(cfg OpenAIConfig) (*OpenAITransport, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAITransport{client: openai.NewClientWithConfig(clientCfg), model: model}, nil
}

// Name returns the transport name for error attribution.
func (t *OpenAITransport) Name() string { return "openai-gateway" }

// Complete sends one structured-output chat completion and returns the
// schema-validated raw JSON.
func (t *OpenAITransport) Complete(ctx context.Context, req *CompletionRequest) (json.RawMessage, error) {
	return callWithTimeout(ctx, t, req, func(callCtx context.Context) (json.RawMessage, error) {
		chatReq := openai.ChatCompletionRequest{
			Model: t.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: req.System},
				{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
			},
			MaxCompletionTokens: req.MaxTokens,
			Temperature:         float32(req.Temperature),
		}

		if req.Schema != nil {
			schemaBytes, err := json.Marshal(req.Schema.Definition)
			if err != nil {
				return nil, fmt.Errorf("marshal schema: %w", err)
			}
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:   req.Schema.Name,
					Schema: json.RawMessage(schemaBytes),
					Strict: true,
				},
			}
		}

		resp, err := t.client.CreateChatCompletion(callCtx, chatReq)
		if err != nil {
			return nil, t.mapError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, &MalformedResponseError{Transport: t.Name(), Err: ErrEmptyResponse}
		}

		content := json.RawMessage(resp.Choices[0].Message.Content)
		if req.Schema != nil {
			if err := validateShape(t.Name(), req.Schema, content); err != nil {
				return nil, err
			}
		}
		return content, nil
	})
}

// mapError classifies OpenAI SDK errors into the package failure taxonomy.
func (t *OpenAITransport) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Transport: t.Name(), RetryAfter: 2 * time.Second, Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &UnavailableError{Transport: t.Name(), Err: err}
		}
	}
	return &UnavailableError{Transport: t.Name(), Err: err}
}
