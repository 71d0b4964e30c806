// Package openai wraps the official OpenAI SDK as an llm chat client. It also
// serves any OpenAI-compatible endpoint (Grok) via a custom base URL.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client invokes chat completions against an OpenAI-compatible API.
type Client struct {
	client      *openai.Client
	name        string
	model       string
	temperature float64
}

// Config configures the chat client.
type Config struct {
	Name        string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}

// NewClient creates a chat client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing API key")
	}
	if cfg.Model == "" {
		return nil, errors.New("missing model name")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	name := cfg.Name
	if name == "" {
		name = "OpenAI"
	}
	return &Client{
		client:      &client,
		name:        name,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Name returns the provider name this client was built for.
func (c *Client) Name() string { return c.name }

// Invoke sends prompt as a single user message and returns the completion text.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}
