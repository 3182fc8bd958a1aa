package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"marketdata_backend/internal/app/di"
	"marketdata_backend/internal/app/router"
	marketdatahandler "marketdata_backend/internal/feature/marketdata/transport/handler"
	"marketdata_backend/internal/platform/cache"
	"marketdata_backend/internal/platform/config"
	platformhandler "marketdata_backend/internal/platform/http/handler"
	"marketdata_backend/internal/platform/logging"
	"marketdata_backend/internal/platform/metrics"
	infraredis "marketdata_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env を環境変数に読み込む（存在しなくてもよい）
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis（接続できなければプロセス内キャッシュで動作）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err == nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	} else {
		slog.Warn("failed to connect to Redis", "addr", cfg.Redis.Addr(), "error", err)
	}

	// Cache / upstream / metrics
	cacheSvc := cache.NewService(di.NewCacheStore(rdb, cfg.Redis.KeyPrefix), logger, cache.WithOpTimeout(cfg.Redis.OpTimeout))
	provider := di.NewMarketDataProvider(cfg.Yahoo)
	recorder := metrics.NewRecorder()

	// Usecase
	marketDataUC := di.NewMarketDataUsecase(provider, cacheSvc, recorder, logger, cfg.Market)

	// Handler
	marketDataH := marketdatahandler.NewMarketDataHandler(marketDataUC)
	healthH := platformhandler.NewHealthHandler(cacheSvc)

	// ルータ生成
	r := router.NewRouter(marketDataH, healthH, recorder.Handler(), cfg.Server.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// 上流のタイムアウトより長くする
		WriteTimeout: cfg.Yahoo.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exited")
}
