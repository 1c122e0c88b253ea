package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/llm"
	"github.com/spf13/viper"
)

// llmConfig builds the appraisal config from viper settings.
// The API key falls back to the provider's conventional variable.
func llmConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = llm.DefaultProvider
	}

	cfg := llm.Config{
		Provider:    provider,
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}

	// Set defaults if not specified
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 60 // requests per minute
	}

	if cfg.APIKey == "" {
		env := llm.APIKeyEnv(provider)
		cfg.APIKey = os.Getenv(env)
		if cfg.APIKey == "" {
			return llm.Config{}, fmt.Errorf("%w: %s API key not found in llm.api_key or %s", common.ErrMissingConfig, provider, env)
		}
	}

	return cfg, nil
}

// createAppraiser creates the appraisal client. Callers Close it when done.
func createAppraiser(logger *slog.Logger) (*llm.Appraiser, error) {
	cfg, err := llmConfig()
	if err != nil {
		return nil, err
	}

	appraiser, err := llm.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create appraiser: %w", err)
	}
	return appraiser, nil
}
