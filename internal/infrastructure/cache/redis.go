// Package cache holds the Redis-backed payment-settings cache and the
// advisory shift lock.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/dinepay/internal/config"
	"github.com/redis/go-redis/v9"
)

// Connect returns a pinged client, or nil when no address is configured.
// Every consumer in this package treats a nil client as "disabled".
func Connect(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("redis not configured, cache and shift lock disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return rdb, nil
}
