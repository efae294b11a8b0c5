package provider

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAI streams chat completions from the OpenAI API.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates an OpenAI provider. A custom BaseURL may point at any
// OpenAI-compatible endpoint.
func NewOpenAI(opts Options) (*OpenAI, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: opts.MaxTokens,
	}, nil
}

// Name implements Provider.
func (p *OpenAI) Name() string { return "openai" }

// StartStream implements Provider.
func (p *OpenAI) StartStream(ctx context.Context, prompt string) (Stream, error) {
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
		return nil, fmt.Errorf("openai: start stream: %w", err)
	}

	return &chatStream{inner: stream}, nil
}

// chatStream adapts go-openai's stream to the Stream interface.
type chatStream struct {
	inner *openai.ChatCompletionStream
}

func (s *chatStream) Recv() (string, error) {
	resp, err := s.inner.Recv()
	if err != nil {
		// io.EOF passes through untouched as the completion signal.
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (s *chatStream) Close() error {
	return s.inner.Close()
}
