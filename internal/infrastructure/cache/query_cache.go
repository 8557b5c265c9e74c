// Package cache provides a shared read-through cache for expensive dashboard
// and summary queries.
package cache

import (
	"context"
	"time"
)

// QueryCache stores serialized query responses under a key with a TTL.
type QueryCache interface {
	// Get returns the cached value for a key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under a key with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes a key
	Invalidate(ctx context.Context, key string) error

	// Close releases any underlying resources
	Close() error
}

// NoopQueryCache disables caching: every Get is a miss, every Set is
// discarded.
type NoopQueryCache struct{}

// Get always reports a miss
func (NoopQueryCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value
func (NoopQueryCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Invalidate does nothing
func (NoopQueryCache) Invalidate(context.Context, string) error {
	return nil
}

// Close does nothing
func (NoopQueryCache) Close() error {
	return nil
}

// Ensure NoopQueryCache implements QueryCache
var _ QueryCache = NoopQueryCache{}
