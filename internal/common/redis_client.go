package common

import (
	"context"
	"time"

	"infinite-experiment/consortium/internal/config"
	"infinite-experiment/consortium/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared client for the cache and the event stream.
// A failed ping is logged but the client is still returned; the pool keeps
// retrying in the background.
func NewRedisClient(cfg config.Redis) *redis.Client {
	logging.Info("Initializing Redis client", "addr", cfg.Addr(), "db", cfg.DB)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Failed to ping Redis", "addr", cfg.Addr(), "error", err.Error())
		return client
	}

	logging.Info("Connected to Redis", "addr", cfg.Addr())
	return client
}
