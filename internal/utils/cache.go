package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key prefixes for the POS read endpoints. Write handlers invalidate by
// prefix so every cached variant (date ranges, filters) is dropped together.
const (
	ExpenseCachePrefix = "pos:cache:expenses:" // Expense listings, keyed by date range
	ReportCachePrefix  = "pos:cache:report:"   // Sales reports, keyed by date range
	MenuCacheKey       = "pos:cache:menu"      // The single menu listing
)

// CacheTTL is how long cached read responses live before a refetch
const CacheTTL = 60 * time.Second

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// DeleteCacheByPrefix removes every cached entry under a prefix. The cache
// keyspace is small (a handful of recently requested ranges), so KEYS is fine.
func DeleteCacheByPrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	keys, err := rdb.Keys(ctx, prefix+"*").Result() // Find keys under the prefix
	if err != nil || len(keys) == 0 {
		return err // Nothing to delete or Redis error
	}
	return rdb.Del(ctx, keys...).Err() // Delete all matched keys
}
