package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"ads-scheduler/internal/config/configs"
)

// NewRedisClient creates a Redis client from the provided configuration and
// verifies connectivity with a 5 second ping timeout. The caller must close
// the client when it is no longer needed.
func NewRedisClient(ctx context.Context, cfg configs.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
