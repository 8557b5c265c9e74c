package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenRevocations_IsRevoked(t *testing.T) {
	store := NewInMemoryTokenRevocations()
	ctx := context.Background()

	t.Run("unknown JTI is not revoked", func(t *testing.T) {
		revoked, err := store.IsRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked JTI is reported", func(t *testing.T) {
		store.Revoke("jti-1", time.Minute)

		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entry is not revoked", func(t *testing.T) {
		store.Revoke("jti-2", -time.Second)

		revoked, err := store.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestInMemoryTokenRevocations_IsUserInvalidated(t *testing.T) {
	store := NewInMemoryTokenRevocations()
	ctx := context.Background()

	t.Run("user without invalidation is valid", func(t *testing.T) {
		invalidated, err := store.IsUserInvalidated(ctx, "7", time.Now())
		require.NoError(t, err)
		assert.False(t, invalidated)
	})

	t.Run("tokens issued before invalidation are rejected", func(t *testing.T) {
		issuedAt := time.Now().Add(-time.Hour)
		store.InvalidateUser("7")

		invalidated, err := store.IsUserInvalidated(ctx, "7", issuedAt)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("tokens issued after invalidation are accepted", func(t *testing.T) {
		store.InvalidateUser("8")
		issuedAt := time.Now().Add(time.Second)

		invalidated, err := store.IsUserInvalidated(ctx, "8", issuedAt)
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}

func TestNoopTokenRevocations(t *testing.T) {
	store := NoopTokenRevocations{}
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "any")
	require.NoError(t, err)
	assert.False(t, revoked)

	invalidated, err := store.IsUserInvalidated(ctx, "any", time.Now())
	require.NoError(t, err)
	assert.False(t, invalidated)
}
