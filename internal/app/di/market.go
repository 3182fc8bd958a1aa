// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"marketdata_backend/internal/feature/marketdata/usecase"
	"marketdata_backend/internal/platform/cache"
	"marketdata_backend/internal/platform/config"
	"marketdata_backend/internal/platform/externalapi/yahoo"
	infrahttp "marketdata_backend/internal/platform/http"
	"marketdata_backend/internal/shared/clock"
)

// NewMarketDataProvider creates a fully configured Yahoo Finance client with its own HTTP client.
func NewMarketDataProvider(cfg config.YahooConfig) *yahoo.Client {
	ycfg := yahoo.Config{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		MaxConcurrency:    cfg.MaxConcurrency,
		RequestsPerMinute: cfg.RequestsPerMinute,
		UserAgent:         cfg.UserAgent,
		CookieURL:         cfg.CookieURL,
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, cfg.MaxConcurrency)
	return yahoo.NewClient(ycfg, httpClient)
}

// NewCacheStore creates the cache Store.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process store.
func NewCacheStore(rdb *redis.Client, prefix string) cache.Store {
	if rdb != nil {
		return cache.NewRedisStore(rdb, prefix)
	}
	slog.Warn("Redis unavailable, using in-process cache")
	return cache.NewMemoryStore(clock.Real{})
}

// NewMarketDataUsecase wires the aggregator over provider and cache.
func NewMarketDataUsecase(provider usecase.MarketDataProvider, c usecase.Cache, rec usecase.Recorder, logger *slog.Logger, cfg config.MarketConfig) *usecase.MarketDataUsecase {
	return usecase.NewMarketDataUsecase(provider, c,
		usecase.WithRecorder(rec),
		usecase.WithLogger(logger),
		usecase.WithTrendingRegion(cfg.TrendingRegion),
	)
}
