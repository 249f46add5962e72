package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-market-sentiment/pkg/common"

	"github.com/redis/go-redis/v9"
)

// KVClient is the subset of the Redis client used by the result cache.
type KVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CacheRepository stores JSON encoded analysis responses.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// NewCacheRepository creates a Redis backed cache. A non-positive ttl disables it.
func NewCacheRepository(client KVClient, ttl time.Duration) CacheRepository {
	return &cacheRepository{client: client, ttl: ttl}
}

type cacheRepository struct {
	client KVClient
	ttl    time.Duration
}

// Get decodes the value stored under key into dest and reports whether it existed.
func (r *cacheRepository) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if r.ttl <= 0 {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value interface{}) error {
	if r.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// CacheKey builds a namespaced key from the SHA-256 of the given parts.
func CacheKey(kind string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return common.RedisKeyAnalysisCachePrefix + kind + ":" + hex.EncodeToString(sum[:])
}
