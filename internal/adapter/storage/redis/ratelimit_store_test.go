package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitStore(t *testing.T) *RateLimitStore {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimitStore(client)
}

func TestRateLimitStore_AllowsUnderLimit(t *testing.T) {
	store := setupRateLimitStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := store.Allow(ctx, "1.2.3.4:deposits", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestRateLimitStore_BlocksOverLimit(t *testing.T) {
	store := setupRateLimitStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Allow(ctx, "1.2.3.4:withdrawals", 3, time.Minute)
		require.NoError(t, err)
	}

	result, err := store.Allow(ctx, "1.2.3.4:withdrawals", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestRateLimitStore_KeysAreIsolated(t *testing.T) {
	store := setupRateLimitStore(t)
	ctx := context.Background()

	_, err := store.Allow(ctx, "1.2.3.4:reads", 1, time.Minute)
	require.NoError(t, err)

	result, err := store.Allow(ctx, "5.6.7.8:reads", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
