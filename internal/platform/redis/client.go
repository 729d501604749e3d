// Package redis connects the optional channel cache backend. The cache is a
// soft dependency: a brand platform without REDIS_URL runs on the in-memory
// cache instead, so Connect reports absence with a nil client rather than an
// error.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"brandgate/internal/platform/config"
)

// Connect opens and verifies a Redis connection from the given configuration.
// An empty URL means Redis is not configured and yields (nil, nil).
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
