// Package router builds the HTTP routing table.
package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	marketdatahandler "marketdata_backend/internal/feature/marketdata/transport/handler"
	platformhandler "marketdata_backend/internal/platform/http/handler"
)

// NewRouter registers every route. metrics may be nil to disable /metrics.
func NewRouter(marketData *marketdatahandler.MarketDataHandler, health *platformhandler.HealthHandler,
	metrics http.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(allowedOrigins)))

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	api := r.Group("/api")
	{
		stocks := api.Group("/stocks")
		stocks.GET("/search", marketData.SearchStocks)
		stocks.GET("/:symbol", marketData.GetStockInfo)
		stocks.GET("/:symbol/price", marketData.GetStockPrice)
		stocks.GET("/:symbol/history", marketData.GetStockHistory)

		market := api.Group("/market")
		market.GET("/status", marketData.GetMarketStatus)
		market.GET("/trending", marketData.GetTrendingStocks)
	}

	return r
}

// corsConfig allows read-only cross-origin access. "*" (or an empty list) allows every origin.
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
