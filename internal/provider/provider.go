package provider

import "context"

// Stream delivers the model's output as an ordered sequence of UTF-8
// text fragments. Recv returns io.EOF once the stream completes; any
// other error means the transport failed mid-stream.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Provider starts a model interaction for a given prompt. Implementations
// are selected explicitly by the caller through configuration; nothing in
// this package consults ambient environment state.
type Provider interface {
	Name() string
	StartStream(ctx context.Context, prompt string) (Stream, error)
}

// Options configures a provider implementation.
type Options struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}
