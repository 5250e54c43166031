//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ehsanpg/mazzehabi/pkg/cache"
	"github.com/ehsanpg/mazzehabi/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

type work struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func TestRedis(t *testing.T) {
	t.Parallel()

	client := newTestRedisClient(t)
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		t.Parallel()
		c := cache.NewRedis[[]work](client, cache.WithPrefix("test-miss"))
		_, err := c.Get(ctx, "catalog")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("round trip with prefix", func(t *testing.T) {
		t.Parallel()
		c := cache.NewRedis[[]work](client, cache.WithPrefix("test-roundtrip"))
		t.Cleanup(func() { _ = c.Delete(ctx, "catalog") })

		want := []work{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}
		require.NoError(t, c.Set(ctx, "catalog", want, time.Minute))

		got, err := c.Get(ctx, "catalog")
		require.NoError(t, err)
		require.Equal(t, want, got)

		exists, err := client.Exists(ctx, "test-roundtrip:catalog").Result()
		require.NoError(t, err)
		require.Equal(t, int64(1), exists)
	})

	t.Run("default ttl applied", func(t *testing.T) {
		t.Parallel()
		c := cache.NewRedis[string](client, cache.WithPrefix("test-ttl"), cache.WithRedisDefaultTTL(time.Minute))
		t.Cleanup(func() { _ = c.Delete(ctx, "k") })

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		ttl, err := client.TTL(ctx, "test-ttl:k").Result()
		require.NoError(t, err)
		require.Greater(t, ttl, time.Duration(0))
		require.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewRedis[string](client, cache.WithPrefix("test-del"))
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}
