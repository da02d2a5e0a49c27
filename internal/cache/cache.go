// Package cache caches optimization results in Redis, keyed by a hash of
// the player pool and run configuration, adapted from the teacher's
// pkg/cache/optimization_cache.go (which cached a whole service-level
// OptimizationResult the same way).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ResultCache stores and retrieves serialized optimization results.
type ResultCache struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewResultCache builds a ResultCache around an existing redis.Client.
func NewResultCache(client *redis.Client, logger *logrus.Logger) *ResultCache {
	return &ResultCache{client: client, logger: logger}
}

// Key derives a stable cache key from the raw pool bytes and the engine
// config, so identical inputs hit the cache regardless of request order.
func Key(poolDigest []byte, cfgJSON []byte) string {
	h := sha256.New()
	h.Write(poolDigest)
	h.Write(cfgJSON)
	return hex.EncodeToString(h.Sum(nil))
}

// Set stores result under key with expiration.
func (c *ResultCache) Set(ctx context.Context, key string, result interface{}, expiration time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal optimization result: %w", err)
	}

	fullKey := fmt.Sprintf("optimization:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set optimization result in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  fullKey,
		"expiration": expiration,
	}).Debug("cached optimization result")
	return nil
}

// Get retrieves the raw cached JSON for key, or an error if absent.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	fullKey := fmt.Sprintf("optimization:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("optimization result not found in cache")
		}
		return nil, fmt.Errorf("failed to get optimization result from cache: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("retrieved optimization result from cache")
	return []byte(data), nil
}

// Delete removes a cached result.
func (c *ResultCache) Delete(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("optimization:%s", key)
	if err := c.client.Del(ctx, fullKey).Err(); err != nil {
		return fmt.Errorf("failed to delete optimization result from cache: %w", err)
	}
	c.logger.WithField("cache_key", fullKey).Debug("deleted optimization result from cache")
	return nil
}

// Status reports basic cache health and the number of cached results,
// adapted from OptimizationCacheService.GetStatus.
func (c *ResultCache) Status(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"service":   "ga-result-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize := c.client.DBSize(ctx); dbSize.Err() == nil {
		status["db_size"] = dbSize.Val()
	}
	if keys, err := c.client.Keys(ctx, "optimization:*").Result(); err == nil {
		status["optimization_keys"] = len(keys)
	}
	return status
}

// Flush clears every cached optimization result.
func (c *ResultCache) Flush(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, "optimization:*").Result()
	if err != nil {
		return fmt.Errorf("failed to list optimization keys: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete optimization keys: %w", err)
		}
	}
	c.logger.WithField("deleted_keys", len(keys)).Info("flushed optimization cache")
	return nil
}
