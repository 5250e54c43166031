package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Ping returns a readiness check that fails with ErrUnavailable while the
// client cannot reach the server.
//
//	web.WithReadinessCheck("works_cache", redis.Ping(client))
func Ping(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("%w: no client", ErrUnavailable)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil
	}
}
