package cache

import (
	"context"

	"catalog/internal/config"
	"catalog/internal/model"

	"github.com/rs/zerolog"
)

// ProductCache caches product listings keyed by category filter.
type ProductCache interface {
	// GetList returns the cached listing for category; ok is false on a miss.
	GetList(ctx context.Context, category string) (products []model.Product, ok bool, err error)

	// SetList stores the listing for category.
	SetList(ctx context.Context, category string, products []model.Product) error

	// Invalidate drops every cached listing.
	Invalidate(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// noopCache never stores anything.
type noopCache struct{}

// NewNoop returns a cache that always misses.
func NewNoop() ProductCache {
	return noopCache{}
}

func (noopCache) GetList(context.Context, string) ([]model.Product, bool, error) {
	return nil, false, nil
}

func (noopCache) SetList(context.Context, string, []model.Product) error { return nil }

func (noopCache) Invalidate(context.Context) error { return nil }

func (noopCache) Close() error { return nil }

// New returns the Redis cache when enabled and reachable, and a no-op cache
// otherwise.
func New(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) ProductCache {
	if !cfg.Enabled {
		return NewNoop()
	}

	redisCache, err := NewRedis(ctx, cfg.RedisAddr, cfg.TTL, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise product cache, serving directly from database")
		return NewNoop()
	}

	logger.Info().
		Str("redis_addr", cfg.RedisAddr).
		Dur("ttl", cfg.TTL).
		Msg("product cache enabled")

	return redisCache
}
