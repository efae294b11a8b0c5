package provider

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "anthropic/claude-3.5-sonnet"
)

// OpenRouter streams chat completions through the OpenRouter gateway.
// The wire protocol is OpenAI-compatible, so it reuses the same SDK with
// its own base URL and default model.
type OpenRouter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenRouter creates an OpenRouter provider.
func NewOpenRouter(opts Options) (*OpenRouter, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openrouter: api key is required")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = openRouterBaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	return &OpenRouter{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: opts.MaxTokens,
	}, nil
}

// Name implements Provider.
func (p *OpenRouter) Name() string { return "openrouter" }

// StartStream implements Provider.
func (p *OpenRouter) StartStream(ctx context.Context, prompt string) (Stream, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: p.maxTokens,
		Stream:    true,
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openrouter: start stream: %w", err)
	}

	return &chatStream{inner: stream}, nil
}

// New constructs a provider by name. Unknown names are an error rather
// than a silent default so misconfiguration is caught at startup.
func New(name string, opts Options) (Provider, error) {
	switch name {
	case "openai":
		return NewOpenAI(opts)
	case "openrouter":
		return NewOpenRouter(opts)
	default:
		return nil, fmt.Errorf("unknown provider: %q (must be openai or openrouter)", name)
	}
}
