// Package openai provides a remote embedder speaking the OpenAI embeddings
// API. Ollama's native response shape is accepted too, so a local gateway can
// stand in for the hosted API.
package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Client is an OpenAI-compatible embeddings client implementing the Embedder interface.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	client     *http.Client
	maxRetries int
}

// Config configures the embeddings client. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: timeout},
		maxRetries: 5,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Prepare is a no-op: remote models need no corpus pass. Dimension is set
// lazily on the first embed.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(text string) ([]float64, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		vec, retry, err := c.embedOnce(text, attempt)
		if err == nil {
			if c.dimension == 0 {
				c.dimension = len(vec)
			}
			return vec, nil
		}
		lastErr = err
		if !retry || attempt == c.maxRetries {
			break
		}
	}
	return nil, lastErr
}

// embedOnce performs one request. retry reports whether the failure is worth
// another attempt; the backoff sleep has already happened when it returns.
func (c *Client) embedOnce(text string, attempt int) (vec []float64, retry bool, err error) {
	payload, _ := json.Marshal(map[string]string{
		"input": text,
		"model": c.model,
	})
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		time.Sleep(backoff(attempt))
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		time.Sleep(retryAfter(resp, attempt))
		return nil, true, fmt.Errorf("openai embeddings failed: %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("openai embeddings failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		time.Sleep(backoff(attempt))
		return nil, true, err
	}
	if vec := decodeEmbedding(body); len(vec) > 0 {
		return vec, false, nil
	}
	time.Sleep(backoff(attempt))
	return nil, true, errors.New("no embedding returned")
}

// decodeEmbedding accepts both the OpenAI list shape and Ollama's flat shape.
func decodeEmbedding(body []byte) []float64 {
	var openaiOut struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &openaiOut); err == nil && len(openaiOut.Data) > 0 {
		return openaiOut.Data[0].Embedding
	}
	var ollamaOut struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &ollamaOut); err == nil {
		return ollamaOut.Embedding
	}
	return nil
}

func retryAfter(resp *http.Response, attempt int) time.Duration {
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return backoff(attempt)
}

func backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
