package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
	"github.com/redis/go-redis/v9"
)

// New creates a Redis client and checks the connection
func New(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}

	return client, nil
}
