// Package provider resolves which LLM backend services a pipeline run.
// Credentials are probed from the process environment; an explicit selection
// overrides the fixed fallback order.
package provider

import (
	"errors"
	"fmt"
	"os"
)

// Name identifies one of the supported LLM backends.
type Name string

const (
	OpenAI    Name = "OpenAI"
	Grok      Name = "Grok"
	Anthropic Name = "Anthropic"
)

// Priority is the fixed fallback order used when no provider has been
// explicitly selected.
var Priority = []Name{OpenAI, Grok, Anthropic}

// Settings carries everything needed to construct a client for one backend.
type Settings struct {
	Provider    Name
	Model       string
	APIKey      string
	APIBase     string
	Temperature float64
}

const (
	openAIModel    = "o3-mini"
	grokModel      = "grok-3-latest"
	anthropicModel = "claude-3-opus-20240229"

	grokAPIBase = "https://api.xai.com/v1"

	// Low temperature keeps the analytical summaries reproducible.
	defaultTemperature = 0.2
)

const (
	envOpenAIKey    = "OPENAI_API_KEY"
	envOpenAIBase   = "OPENAI_API_BASE"
	envGrokKey      = "GROK_API_KEY"
	envAnthropicKey = "ANTHROPIC_API_KEY"
)

// Example values from the .env template count as unconfigured.
var placeholders = map[string]struct{}{
	"your_openai_api_key":    {},
	"your_grok_api_key":      {},
	"your_anthropic_api_key": {},
}

// ErrNoProvider is returned when no backend has a usable credential.
var ErrNoProvider = errors.New("no LLM provider configured: set OPENAI_API_KEY, GROK_API_KEY or ANTHROPIC_API_KEY")

// ConfigurationError reports a selection of a provider that is not configured.
type ConfigurationError struct {
	Provider Name
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s is not configured or not available", e.Provider)
}

// Registry reports which providers are usable and tracks the active selection.
// The selection is written once before the pipeline starts; the Registry is
// not safe for use concurrently with Select.
type Registry struct {
	lookup   func(string) string
	selected Name
}

// NewRegistry creates a registry backed by the process environment.
func NewRegistry() *Registry {
	return &Registry{lookup: os.Getenv}
}

// NewRegistryWithLookup creates a registry with a custom credential lookup.
// Used by tests to avoid touching the real environment.
func NewRegistryWithLookup(lookup func(string) string) *Registry {
	return &Registry{lookup: lookup}
}

func (r *Registry) credential(envVar string) (string, bool) {
	v := r.lookup(envVar)
	if v == "" {
		return "", false
	}
	if _, ok := placeholders[v]; ok {
		return "", false
	}
	return v, true
}

// Configured returns the settings of every provider whose credential is
// present and not a placeholder.
func (r *Registry) Configured() map[Name]Settings {
	out := make(map[Name]Settings)
	if key, ok := r.credential(envOpenAIKey); ok {
		out[OpenAI] = Settings{
			Provider:    OpenAI,
			Model:       openAIModel,
			APIKey:      key,
			APIBase:     r.lookup(envOpenAIBase),
			Temperature: defaultTemperature,
		}
	}
	if key, ok := r.credential(envGrokKey); ok {
		out[Grok] = Settings{
			Provider:    Grok,
			Model:       grokModel,
			APIKey:      "xai-" + key,
			APIBase:     grokAPIBase,
			Temperature: defaultTemperature,
		}
	}
	if key, ok := r.credential(envAnthropicKey); ok {
		out[Anthropic] = Settings{
			Provider:    Anthropic,
			Model:       anthropicModel,
			APIKey:      key,
			Temperature: defaultTemperature,
		}
	}
	return out
}

// Select records name as the active provider. It fails with a
// ConfigurationError when name is not currently configured, leaving any
// previous selection unchanged.
func (r *Registry) Select(name Name) error {
	if _, ok := r.Configured()[name]; !ok {
		return &ConfigurationError{Provider: name}
	}
	r.selected = name
	return nil
}

// Selected returns the explicitly selected provider name, if any.
func (r *Registry) Selected() (Name, bool) {
	return r.selected, r.selected != ""
}

// ResolveActive returns the settings of the active provider. An explicit
// selection wins if it is still configured; otherwise the first configured
// provider in Priority order is used. ok is false when nothing is configured.
func (r *Registry) ResolveActive() (Settings, bool) {
	configured := r.Configured()
	if r.selected != "" {
		if s, ok := configured[r.selected]; ok {
			return s, true
		}
	}
	for _, name := range Priority {
		if s, ok := configured[name]; ok {
			return s, true
		}
	}
	return Settings{}, false
}

// Validate returns ErrNoProvider when no provider is configured. Every
// downstream stage needs an active LLM, so callers must treat this as fatal
// before starting any pipeline work.
func (r *Registry) Validate() error {
	if len(r.Configured()) == 0 {
		return ErrNoProvider
	}
	return nil
}
