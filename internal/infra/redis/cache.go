// Package redis provides the optional shared cache backend for
// multi-instance deployments. The default backend is the process-local
// cache in internal/infra/memcache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache implements domain.Cache on top of Redis with prefix-based
// namespacing. TTL handling is delegated to Redis itself, so the lazy
// write-sweep of the in-memory backend has no equivalent here.
type Cache struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
}

// NewCache creates a new Redis cache instance. keyPrefix namespaces all keys
// to avoid collisions with other applications sharing the instance.
func NewCache(client *redis.Client, logger *zap.Logger, keyPrefix string) *Cache {
	return &Cache{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value by key. Returns nil if the key doesn't exist.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err == redis.Nil {
		// Absent key is a miss, not an error
		return nil, nil
	}
	if err != nil {
		c.logger.Error("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("cache hit", zap.String("key", key), zap.Int("bytes", len(data)))

	return data, nil
}

// Set stores a value with the given TTL, overwriting any previous entry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.buildKey(key), value, ttl).Err(); err != nil {
		c.logger.Error("cache set failed",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Clear removes all cached values under the keyPrefix and reports how many
// were dropped. Uses SCAN, which is safe for production use (non-blocking).
func (c *Cache) Clear(ctx context.Context) (int, error) {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		c.logger.Error("cache clear scan failed", zap.Error(err))
		return 0, err
	}

	if len(keys) == 0 {
		return 0, nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache clear delete failed",
			zap.Int("key_count", len(keys)),
			zap.Error(err),
		)
		return 0, err
	}

	c.logger.Info("cache cleared", zap.Int("key_count", len(keys)))

	return len(keys), nil
}

// Len returns the number of live entries under the keyPrefix.
func (c *Cache) Len(ctx context.Context) (int, error) {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return 0, err
	}

	return len(keys), nil
}

// scanKeys collects all keys matching the configured prefix.
func (c *Cache) scanKeys(ctx context.Context) ([]string, error) {
	pattern := c.keyPrefix + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning keys for %s: %w", pattern, err)
	}

	return keys, nil
}

// buildKey creates a fully-qualified key with the configured keyPrefix.
func (c *Cache) buildKey(key string) string {
	return c.keyPrefix + ":" + key
}
