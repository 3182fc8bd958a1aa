// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"marketdata_backend/internal/feature/marketdata/domain/entity"
	"marketdata_backend/internal/feature/marketdata/transport/http/dto"
	"marketdata_backend/internal/feature/marketdata/usecase"
)

// MaxLimit は search / trending の limit の上限です。
const MaxLimit = 100

// MarketDataUsecase は市場データ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketDataUsecase interface {
	SearchStocks(ctx context.Context, query string, limit int) ([]entity.StockInfo, error)
	GetStockInfo(ctx context.Context, symbol string) (entity.StockInfo, error)
	GetStockPrice(ctx context.Context, symbol string) (entity.StockPrice, error)
	GetStockHistory(ctx context.Context, symbol, period, interval string) ([]entity.StockHistory, error)
	GetMarketStatus(ctx context.Context) (entity.MarketStatus, error)
	GetTrendingStocks(ctx context.Context, limit int) ([]entity.TrendingStock, error)
}

// MarketDataHandler は市場データのHTTPリクエストを処理します。
type MarketDataHandler struct {
	uc MarketDataUsecase
}

// NewMarketDataHandler は指定されたusecaseでMarketDataHandlerの新しいインスタンスを生成します。
func NewMarketDataHandler(uc MarketDataUsecase) *MarketDataHandler {
	return &MarketDataHandler{uc: uc}
}

// SearchStocks は銘柄コードまたは会社名で銘柄を検索します。
//
// エンドポイント例:
// GET /api/stocks/search?q=toyota&limit=10
func (h *MarketDataHandler) SearchStocks(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "query parameter q is required"})
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	out, err := h.uc.SearchStocks(c.Request.Context(), q, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetStockInfo は銘柄の詳細情報を返します。
//
// GET /api/stocks/:symbol
func (h *MarketDataHandler) GetStockInfo(c *gin.Context) {
	out, err := h.uc.GetStockInfo(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetStockPrice は銘柄の現在値を返します。
//
// GET /api/stocks/:symbol/price
func (h *MarketDataHandler) GetStockPrice(c *gin.Context) {
	out, err := h.uc.GetStockPrice(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetStockHistory は銘柄の価格履歴を返します。period/interval 未指定時はusecase側のデフォルト値を使用します。
//
// GET /api/stocks/:symbol/history?period=1mo&interval=1d
func (h *MarketDataHandler) GetStockHistory(c *gin.Context) {
	history, err := h.uc.GetStockHistory(c.Request.Context(), c.Param("symbol"), c.Query("period"), c.Query("interval"))
	if err != nil {
		writeError(c, err)
		return
	}

	// データをフォーマット
	out := make([]dto.StockHistoryResponse, 0, len(history))
	for _, x := range history {
		out = append(out, dto.StockHistoryResponse{
			Date:     x.Date.UTC().Format(time.RFC3339),
			Open:     x.Open,
			High:     x.High,
			Low:      x.Low,
			Close:    x.Close,
			Volume:   x.Volume,
			AdjClose: x.AdjClose,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetMarketStatus は東証の立会状況と主要指数を返します。
//
// GET /api/market/status
func (h *MarketDataHandler) GetMarketStatus(c *gin.Context) {
	out, err := h.uc.GetMarketStatus(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetTrendingStocks はトレンド銘柄と現在値を返します。
//
// GET /api/market/trending?limit=20
func (h *MarketDataHandler) GetTrendingStocks(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	out, err := h.uc.GetTrendingStocks(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// queryInt parses an optional integer query parameter; absent means 0 (usecase default).
// On a malformed, negative or above-MaxLimit value it writes 400 and returns false.
func queryInt(c *gin.Context, name string) (int, bool) {
	s := c.Query(name)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	if n > MaxLimit {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("%s must be at most %d", name, MaxLimit)})
		return 0, false
	}
	return n, true
}

// writeError は上流の失敗を502、それ以外を500として返します。
func writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrUpstreamFailure) {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error("unexpected handler error", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}
