package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocations answers whether a token the command service issued has
// since been revoked. The command service writes revocation entries on
// logout; this side only reads them.
type TokenRevocations interface {
	// IsRevoked checks if a token's JTI (JWT ID) has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// IsUserInvalidated checks if all of a user's tokens issued before the
	// stored invalidation timestamp should be rejected
	IsUserInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenRevocations reads revocation entries from the Redis instance
// shared with the command service. The key scheme must match the writer.
type RedisTokenRevocations struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenRevocations creates a revocation reader on an existing Redis client
func NewRedisTokenRevocations(client *redis.Client) *RedisTokenRevocations {
	return &RedisTokenRevocations{
		client:    client,
		keyPrefix: "token:blacklist:",
	}
}

func (r *RedisTokenRevocations) jtiKey(jti string) string {
	return r.keyPrefix + "jti:" + jti
}

func (r *RedisTokenRevocations) userKey(userID string) string {
	return r.keyPrefix + "user:" + userID
}

// IsRevoked checks if a token's JTI has been revoked
func (r *RedisTokenRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return exists > 0, nil
}

// IsUserInvalidated checks if a token was issued before the user's
// invalidation timestamp
func (r *RedisTokenRevocations) IsUserInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	invalidationTimeStr, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}

	var invalidationTime int64
	if _, err := fmt.Sscanf(invalidationTimeStr, "%d", &invalidationTime); err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}

	return tokenIssuedAt.Unix() <= invalidationTime, nil
}

// Ensure RedisTokenRevocations implements TokenRevocations
var _ TokenRevocations = (*RedisTokenRevocations)(nil)

// NoopTokenRevocations is used when Redis is disabled: no token is ever
// considered revoked.
type NoopTokenRevocations struct{}

// IsRevoked always reports false
func (NoopTokenRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

// IsUserInvalidated always reports false
func (NoopTokenRevocations) IsUserInvalidated(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

// Ensure NoopTokenRevocations implements TokenRevocations
var _ TokenRevocations = NoopTokenRevocations{}

// InMemoryTokenRevocations provides an in-memory implementation for testing
type InMemoryTokenRevocations struct {
	mu                    sync.RWMutex
	revokedJTIs           map[string]time.Time // JTI -> entry expiration
	userInvalidationTimes map[string]time.Time // userID -> invalidation time
}

// NewInMemoryTokenRevocations creates a new in-memory revocation store
func NewInMemoryTokenRevocations() *InMemoryTokenRevocations {
	return &InMemoryTokenRevocations{
		revokedJTIs:           make(map[string]time.Time),
		userInvalidationTimes: make(map[string]time.Time),
	}
}

// Revoke marks a JTI revoked for the given TTL
func (r *InMemoryTokenRevocations) Revoke(jti string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revokedJTIs[jti] = time.Now().Add(ttl)
}

// InvalidateUser marks all of a user's earlier tokens invalid as of now
func (r *InMemoryTokenRevocations) InvalidateUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userInvalidationTimes[userID] = time.Now()
}

// IsRevoked checks if a token's JTI is revoked (and the entry not expired)
func (r *InMemoryTokenRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiration, exists := r.revokedJTIs[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(r.revokedJTIs, jti)
		return false, nil
	}
	return true, nil
}

// IsUserInvalidated checks if a token was issued before the user's
// invalidation timestamp
func (r *InMemoryTokenRevocations) IsUserInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invalidationTime, exists := r.userInvalidationTimes[userID]
	if !exists {
		return false, nil
	}
	return tokenIssuedAt.UnixNano() <= invalidationTime.UnixNano(), nil
}

// Ensure InMemoryTokenRevocations implements TokenRevocations
var _ TokenRevocations = (*InMemoryTokenRevocations)(nil)
