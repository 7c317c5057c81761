//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive/workhive-api/internal/store"
	"go.uber.org/zap"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func newTestRedisStore(t *testing.T) (*store.RedisCounterStore, *redis.Client) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return store.NewRedisCounterStore(client, zap.NewNop()), client
}

func TestRedisCounterStoreIntegration(t *testing.T) {
	s, client := newTestRedisStore(t)
	defer client.Close()

	ctx := context.Background()

	t.Run("increments and applies window ttl", func(t *testing.T) {
		key := "rl:test:incr"
		defer client.Del(ctx, key)

		first, err := s.Increment(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.Count)

		second, err := s.Increment(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), second.Count)

		ttl, err := client.PTTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Positive(t, ttl, "key must carry the window TTL")
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("reset zeroes the count and keeps the ttl", func(t *testing.T) {
		key := "rl:test:reset"
		defer client.Del(ctx, key)

		_, err := s.Increment(ctx, key, time.Minute)
		require.NoError(t, err)

		require.NoError(t, s.Reset(ctx, key))

		val, err := client.Get(ctx, key).Int64()
		require.NoError(t, err)
		assert.Zero(t, val)

		ttl, err := client.PTTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Positive(t, ttl, "reset must preserve the window TTL")
	})

	t.Run("clear removes all counter keys", func(t *testing.T) {
		_, err := s.Increment(ctx, "rl:test:clear1", time.Minute)
		require.NoError(t, err)
		_, err = s.Increment(ctx, "rl:test:clear2", time.Minute)
		require.NoError(t, err)

		require.NoError(t, s.Clear(ctx))

		exists, err := client.Exists(ctx, "rl:test:clear1", "rl:test:clear2").Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("becomes ready after start", func(t *testing.T) {
		// Dedicated client: Shutdown closes it.
		s2, _ := newTestRedisStore(t)

		s2.Start(context.Background())

		require.Eventually(t, s2.Ready, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, store.StateConnected, s2.State())

		require.NoError(t, s2.Shutdown())
		assert.Equal(t, store.StateDisconnected, s2.State())
	})
}

func TestRedisCounterStoreIntegration_BadAddress(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:1",
	})

	s := store.NewRedisCounterStore(client, zap.NewNop())
	s.Start(context.Background())

	// Connection never succeeds; the store must simply stay not ready.
	assert.Never(t, s.Ready, 300*time.Millisecond, 50*time.Millisecond)

	require.NoError(t, s.Shutdown())
}
