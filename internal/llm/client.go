// Package llm constructs chat clients for the supported providers behind a
// single capability interface.
package llm

import (
	"context"
	"fmt"

	"docsum/internal/llm/anthropic"
	"docsum/internal/llm/openai"
	"docsum/internal/provider"
)

// Client is the single capability every pipeline stage needs from a backend.
type Client interface {
	Name() string
	Invoke(ctx context.Context, prompt string) (string, error)
}

// New builds a client for the given provider settings. The provider set is
// closed; an unknown name is a programming error surfaced as an error here.
func New(settings provider.Settings) (Client, error) {
	switch settings.Provider {
	case provider.OpenAI, provider.Grok:
		// Grok speaks the OpenAI chat API behind a different base URL.
		return openai.NewClient(openai.Config{
			Name:        string(settings.Provider),
			Model:       settings.Model,
			APIKey:      settings.APIKey,
			BaseURL:     settings.APIBase,
			Temperature: settings.Temperature,
		})
	case provider.Anthropic:
		return anthropic.NewClient(anthropic.Config{
			Model:       settings.Model,
			APIKey:      settings.APIKey,
			Temperature: settings.Temperature,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", settings.Provider)
	}
}
