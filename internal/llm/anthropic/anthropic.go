// Package anthropic is a minimal messages-API client implementing the llm
// chat interface.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 4096
)

// Client invokes the Anthropic messages API.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
	maxRetries  int
}

// Config configures the Anthropic client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewClient creates a messages client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		return nil, errors.New("missing model name")
	}
	t := cfg.Timeout
	if t == 0 {
		t = 120 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: t},
		maxRetries:  3,
	}, nil
}

// Name returns the provider name this client was built for.
func (c *Client) Name() string { return "Anthropic" }

// Invoke sends prompt as a single user message and returns the response text.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	body := map[string]any{
		"model":       c.model,
		"max_tokens":  maxTokens,
		"temperature": c.temperature,
		"messages":    []message{{Role: "user", Content: prompt}},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	url := c.baseURL + "/v1/messages"

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", apiVersion)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries && ctx.Err() == nil {
				time.Sleep(retryDelay(resp, attempt))
				continue
			}
			return "", err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(resp, attempt)
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				time.Sleep(delay)
				continue
			}
			return "", fmt.Errorf("anthropic messages failed: %s", resp.Status)
		}
		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return "", fmt.Errorf("anthropic messages failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return "", err
		}
		var out struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(payload, &out); err != nil {
			return "", err
		}
		var b strings.Builder
		for _, block := range out.Content {
			if block.Type == "text" {
				b.WriteString(block.Text)
			}
		}
		if b.Len() == 0 {
			return "", errors.New("anthropic returned no text content")
		}
		return b.String(), nil
	}
	return "", errors.New("anthropic messages failed")
}

func retryDelay(resp *http.Response, attempt int) time.Duration {
	if resp != nil {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				return time.Duration(secs) * time.Second
			}
		}
	}
	if attempt < 0 {
		attempt = 0
	}
	base := 500 * time.Millisecond
	d := base << attempt
	if d > 8*time.Second {
		d = 8 * time.Second
	}
	return d
}
