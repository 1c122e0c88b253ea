package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
)

// Appraiser is the entry point the rest of the app uses. It caches results
// by image content and paces requests through a token bucket.
type Appraiser struct {
	client  Client
	cache   *appraisalCache
	limiter *rateLimiter
	logger  *slog.Logger
}

// NewAppraiser wraps client using the cache and rate settings from cfg.
func NewAppraiser(client Client, cfg Config, logger *slog.Logger) *Appraiser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Appraiser{
		client:  client,
		cache:   newAppraisalCache(cfg.CacheTTL),
		limiter: newRateLimiter(cfg.RateLimit),
		logger:  logger,
	}
}

// New builds the provider client from cfg and wraps it.
func New(cfg Config, logger *slog.Logger) (*Appraiser, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewAppraiser(client, cfg, logger), nil
}

// Appraise infers attributes for image. Errors wrap common.ErrAppraisalFailed
// and are not retried.
func (a *Appraiser) Appraise(ctx context.Context, image Image) (Appraisal, error) {
	key := image.Key()
	if cached, ok := a.cache.get(key); ok {
		a.logger.Debug("appraisal cache hit", "key", key[:12])
		return cached, nil
	}

	if err := a.limiter.wait(ctx); err != nil {
		return Appraisal{}, fmt.Errorf("%w: %w", common.ErrAppraisalFailed, err)
	}

	start := time.Now()
	result, err := a.client.Appraise(ctx, image)
	if err != nil {
		a.logger.Warn("appraisal failed",
			"error", err,
			"duration", time.Since(start))
		return Appraisal{}, fmt.Errorf("%w: %w", common.ErrAppraisalFailed, err)
	}

	a.cache.set(key, result)
	a.logger.Info("image appraised",
		"name", result.Name,
		"category", result.Category.String(),
		"type", result.Type,
		"estimated_value", result.EstimatedValue,
		"duration", time.Since(start))
	return result, nil
}

// AppraiseDataURL parses a data: URL and appraises it.
func (a *Appraiser) AppraiseDataURL(ctx context.Context, dataURL string) (Appraisal, error) {
	image, err := ParseDataURL(dataURL)
	if err != nil {
		return Appraisal{}, fmt.Errorf("%w: %w", common.ErrAppraisalFailed, err)
	}
	return a.Appraise(ctx, image)
}

// Close stops background goroutines.
func (a *Appraiser) Close() {
	a.cache.Close()
	a.limiter.Close()
}
