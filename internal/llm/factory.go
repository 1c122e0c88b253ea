package llm

import (
	"fmt"
	"strings"
)

// DefaultProvider is used when no provider is configured.
const DefaultProvider = "gemini"

// Providers lists the supported provider names.
var Providers = []string{"gemini", "anthropic", "openai"}

// NewClient creates the provider client named by cfg.Provider.
func NewClient(cfg Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = DefaultProvider
	}

	switch provider {
	case "gemini", "google":
		return newGeminiClient(cfg)
	case "anthropic", "claude":
		return newAnthropicClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// APIKeyEnv returns the conventional environment variable holding the key
// for provider.
func APIKeyEnv(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
