package redisinfra

import (
	"context"

	"github.com/go-notes-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a go-redis client and verifies connectivity with a ping.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
