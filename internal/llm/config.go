// Package llm provides centralized LLM configuration and client abstractions.
// Callers pick a model tier; the configured provider maps it to a concrete model.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short free-text drafting such as a single bullet
	TierLite ModelTier = "lite"
	// TierStandard is for structured output and summaries
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Gemini API through github.com/google/generative-ai-go
	ProviderGemini Provider = "gemini"
	// ProviderGenAI is the Gemini API through the unified google.golang.org/genai SDK
	ProviderGenAI Provider = "genai"
	// ProviderVertex is Gemini on Vertex AI, authenticated with application default credentials
	ProviderVertex Provider = "vertex"
)

// DefaultVertexLocation is used when no location is configured
const DefaultVertexLocation = "us-central1"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Project and Location are only used by the vertex provider
	Project  string
	Location string
}

// DefaultConfig returns the default configuration (Gemini API)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ParseProvider converts a provider name into a Provider. An empty name selects gemini.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderGenAI, ProviderVertex:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (want gemini, genai or vertex)", name)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// WithProvider returns a copy of the config using provider p
func (c *Config) WithProvider(p Provider) *Config {
	newConfig := c.WithModel(TierStandard, c.GetModel(TierStandard))
	newConfig.Provider = p
	return newConfig
}
