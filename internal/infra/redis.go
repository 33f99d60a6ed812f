package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The idempotency middleware issues every command under a 2 second context;
// the client timeouts are sized to that budget.
const (
	redisDialTimeout = 3 * time.Second
	redisOpTimeout   = 2 * time.Second
)

// NewRedisClient builds the Redis client backing idempotency replay and the
// readiness probe, verifying connectivity before handing it out. Like the
// pg_trgm check on the Postgres side, a dead instance fails here at boot
// instead of on the first retried request.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.DialTimeout = redisDialTimeout
	opt.ReadTimeout = redisOpTimeout
	opt.WriteTimeout = redisOpTimeout

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
