package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()
		client, err := Open(ctx, "")
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrEmptyURL)
	})

	for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgresql://localhost:6379"} {
		t.Run("invalid scheme "+url, func(t *testing.T) {
			t.Parallel()
			client, err := Open(ctx, url)
			require.Nil(t, client)
			require.ErrorIs(t, err, ErrInvalidURL)
		})
	}

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		client, err := Open(ctx, "redis://127.0.0.1:1/0",
			WithRetry(2, time.Millisecond),
			WithTimeouts(50*time.Millisecond, 50*time.Millisecond),
		)
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrUnreachable)
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		client, err := Open(cctx, "redis://127.0.0.1:1/0", WithRetry(5, time.Hour))
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrUnreachable)
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestPing(t *testing.T) {
	t.Parallel()

	t.Run("nil client", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, Ping(nil)(context.Background()), ErrUnavailable)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { _ = client.Close() })

		err := Ping(client)(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
		require.NotErrorIs(t, err, ErrUnreachable)
	})
}

func TestShutdown(t *testing.T) {
	t.Parallel()
	c := &closer{}
	require.NoError(t, Shutdown(c)(context.Background()))
	require.True(t, c.closed)
}
