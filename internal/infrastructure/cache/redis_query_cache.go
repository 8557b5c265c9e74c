package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erp/query-service/internal/infrastructure/config"
)

// RedisQueryCache implements QueryCache using Redis. This is suitable for
// distributed deployments where multiple instances share cached responses.
type RedisQueryCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisQueryCache creates a new Redis-based query cache
func NewRedisQueryCache(cfg config.RedisConfig) (*RedisQueryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQueryCache{
		client:    client,
		keyPrefix: "query:cache:",
	}, nil
}

// NewRedisQueryCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisQueryCacheWithClient(client *redis.Client, keyPrefix string) *RedisQueryCache {
	if keyPrefix == "" {
		keyPrefix = "query:cache:"
	}
	return &RedisQueryCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached value for a key and whether it was present
func (c *RedisQueryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read query cache: %w", err)
	}
	return value, true, nil
}

// Set stores a value under a key with a TTL
func (c *RedisQueryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write query cache: %w", err)
	}
	return nil
}

// Invalidate removes a key
func (c *RedisQueryCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate query cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisQueryCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for sharing/monitoring)
func (c *RedisQueryCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisQueryCache implements QueryCache
var _ QueryCache = (*RedisQueryCache)(nil)
