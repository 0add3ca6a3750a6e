package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/donelist/backend/internal/config"
)

// OptionalClient returns a connected client when the cache is enabled in
// configuration, or nil so callers can wire the cache-less path.
func OptionalClient(cfg config.CacheConfig) (*goRedis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return NewClient(cfg)
}

// NewClient creates a Redis client and performs a health check.
func NewClient(cfg config.CacheConfig) (*goRedis.Client, error) {
	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
