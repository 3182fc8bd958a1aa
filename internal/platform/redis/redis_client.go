// Package redis constructs the Redis client used as the cache backend.
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"marketdata_backend/internal/platform/config"
)

// connectTimeout bounds the startup ping.
const connectTimeout = 3 * time.Second

// NewClient creates a client from cfg without contacting the server.
// Socket reads and writes are bounded by cfg.OpTimeout, and context deadlines are honoured.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:                  cfg.Addr(),
		Password:              cfg.Password,
		DB:                    cfg.DB,
		DialTimeout:           connectTimeout,
		ReadTimeout:           cfg.OpTimeout,
		WriteTimeout:          cfg.OpTimeout,
		ContextTimeoutEnabled: true,
	})
}

// NewRedisClient creates a client from cfg and verifies the connection.
// On failure the client is closed and the error returned; callers fall back to an in-process cache.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := NewClient(cfg)

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr, "db", cfg.DB)
	return rdb, nil
}
