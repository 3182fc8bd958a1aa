package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"marketdata_backend/internal/app/di"
	"marketdata_backend/internal/feature/marketdata/usecase"
	"marketdata_backend/internal/platform/cache"
	"marketdata_backend/internal/platform/config"
	"marketdata_backend/internal/platform/logging"
	infraredis "marketdata_backend/internal/platform/redis"
)

// warmup は WARMUP_SYMBOLS の銘柄データを取得し、Redisキャッシュに載せます。
// サーバーと同じキャッシュを共有するため、Redisに接続できない場合は終了します。
func main() {
	os.Exit(run())
}

// run はウォームアップを実行し、プロセスの終了コードを返します。
func run() int {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Warmup.Timeout)
	defer cancel()

	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("redis is required for warmup", "addr", cfg.Redis.Addr(), "error", err)
		return 1
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}()

	cacheSvc := cache.NewService(di.NewCacheStore(rdb, cfg.Redis.KeyPrefix), logger, cache.WithOpTimeout(cfg.Redis.OpTimeout))
	md := di.NewMarketDataUsecase(di.NewMarketDataProvider(cfg.Yahoo), cacheSvc, nil, logger, cfg.Market)
	uc := usecase.NewWarmupUsecase(md, logger)

	rep, err := uc.WarmAll(ctx, cfg.Warmup.Symbols)
	if err != nil {
		slog.Error("warmup aborted", "succeeded", rep.Succeeded, "failed", rep.Failed, "error", err)
		return 1
	}
	slog.Info("warmup ok", "succeeded", rep.Succeeded, "failed", rep.Failed)
	return 0
}
