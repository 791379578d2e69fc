package translation

import (
	"context"
	"time"

	"go.uber.org/zap"

	redisCache "github.com/carelingo/backend/internal/cache/redis"
	"github.com/carelingo/backend/internal/metrics"
	"github.com/carelingo/backend/pkg/utils"
)

// Cached decorates a Translator with a redis result cache. The fixed language
// set and static FAQ answers make repeated translations common. Cache errors
// are logged and swallowed; the inner translator always decides the outcome.
type Cached struct {
	inner  Translator
	cache  *redisCache.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(inner Translator, cache *redisCache.Client, ttl time.Duration, logger *zap.Logger) *Cached {
	return &Cached{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cached) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}

	key := utils.TranslationKey(source, target, text)

	cached, found, err := c.cache.GetTranslation(ctx, key)
	if err != nil {
		c.logger.Warn("Translation cache read failed", zap.Error(err))
	}
	if found {
		metrics.TranslationCacheHits.Inc()
		return cached, nil
	}
	metrics.TranslationCacheMisses.Inc()

	translated, err := c.inner.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	if err := c.cache.SetTranslation(ctx, key, translated, c.ttl); err != nil {
		c.logger.Warn("Translation cache write failed", zap.Error(err))
	}

	return translated, nil
}
