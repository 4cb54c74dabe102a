package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"bookshelf.dev/storefront/pkg/global"
)

func NewClient(cfg global.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Protocol: 2,
	})
}

// Ping reports whether the server answers within the default timeout.
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, global.DefaultTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
