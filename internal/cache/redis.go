package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalog/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "catalog:products:"
	// keyIndex tracks every listing key written so Invalidate can drop them
	// without a KEYS scan.
	keyIndex = keyPrefix + "keys"
	// allKey holds the unfiltered listing.
	allKey = keyPrefix + "*"
)

// redisCache stores product listings as JSON strings in Redis.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis connects to Redis at addr and verifies the connection.
func NewRedis(ctx context.Context, addr string, ttl time.Duration, logger zerolog.Logger) (ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return newRedisCache(client, ttl, logger), nil
}

func newRedisCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *redisCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "product-cache").Logger(),
	}
}

func listKey(category string) string {
	if category == "" {
		return allKey
	}
	return keyPrefix + "category:" + category
}

// GetList reads a cached listing.
func (c *redisCache) GetList(ctx context.Context, category string) ([]model.Product, bool, error) {
	key := listKey(category)

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached listing %s: %w", key, err)
	}

	c.logger.Debug().Str("key", key).Int("count", len(products)).Msg("cache hit")
	return products, true, nil
}

// SetList writes a listing with the configured TTL and records its key.
func (c *redisCache) SetList(ctx context.Context, category string, products []model.Product) error {
	key := listKey(category)

	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode listing %s: %w", key, err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, payload, c.ttl)
	pipe.SAdd(ctx, keyIndex, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store %s in redis: %w", key, err)
	}

	return nil
}

// Invalidate deletes every tracked listing key. Only the members read here
// are removed from the index, so a listing stored concurrently stays tracked
// for the next call.
func (c *redisCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, keyIndex).Result()
	if err != nil {
		return fmt.Errorf("failed to read cache index: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	members := make([]any, len(keys))
	for i, key := range keys {
		members[i] = key
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.SRem(ctx, keyIndex, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete cached listings: %w", err)
	}

	c.logger.Debug().Int("keys", len(keys)).Msg("product listings invalidated")
	return nil
}

// Close closes the redis client.
func (c *redisCache) Close() error {
	return c.client.Close()
}
