package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"marketdata_backend/internal/feature/marketdata/domain/entity"
	marketdatahandler "marketdata_backend/internal/feature/marketdata/transport/handler"
	platformhandler "marketdata_backend/internal/platform/http/handler"
)

// stubUsecase は各操作の呼び出しを記録するだけのMarketDataUsecaseです。
type stubUsecase struct {
	called string
}

func (s *stubUsecase) SearchStocks(context.Context, string, int) ([]entity.StockInfo, error) {
	s.called = "search"
	return []entity.StockInfo{}, nil
}

func (s *stubUsecase) GetStockInfo(context.Context, string) (entity.StockInfo, error) {
	s.called = "info"
	return entity.StockInfo{}, nil
}

func (s *stubUsecase) GetStockPrice(context.Context, string) (entity.StockPrice, error) {
	s.called = "price"
	return entity.StockPrice{}, nil
}

func (s *stubUsecase) GetStockHistory(context.Context, string, string, string) ([]entity.StockHistory, error) {
	s.called = "history"
	return nil, nil
}

func (s *stubUsecase) GetMarketStatus(context.Context) (entity.MarketStatus, error) {
	s.called = "status"
	return entity.MarketStatus{}, nil
}

func (s *stubUsecase) GetTrendingStocks(context.Context, int) ([]entity.TrendingStock, error) {
	s.called = "trending"
	return nil, nil
}

func newTestRouter(uc *stubUsecase, origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	return NewRouter(marketdatahandler.NewMarketDataHandler(uc), platformhandler.NewHealthHandler(nil), metrics, origins)
}

func TestNewRouter_Routes(t *testing.T) {
	tests := []struct {
		url    string
		called string
	}{
		{url: "/api/stocks/search?q=toyota", called: "search"},
		{url: "/api/stocks/7203.T", called: "info"},
		{url: "/api/stocks/7203.T/price", called: "price"},
		{url: "/api/stocks/7203.T/history", called: "history"},
		{url: "/api/market/status", called: "status"},
		{url: "/api/market/trending", called: "trending"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			uc := &stubUsecase{}
			w := httptest.NewRecorder()
			newTestRouter(uc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.called, uc.called)
		})
	}
}

func TestNewRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(&stubUsecase{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Originなしのプレーンなリクエストはハンドラーまで届く
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}

func TestNewRouter_CORS(t *testing.T) {
	t.Run("allowed origin", func(t *testing.T) {
		r := newTestRouter(&stubUsecase{}, []string{"http://localhost:3000"})
		req := httptest.NewRequest(http.MethodGet, "/api/market/status", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		r := newTestRouter(&stubUsecase{}, []string{"http://localhost:3000"})
		req := httptest.NewRequest(http.MethodGet, "/api/market/status", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard", func(t *testing.T) {
		r := newTestRouter(&stubUsecase{}, []string{"*"})
		req := httptest.NewRequest(http.MethodGet, "/api/market/status", nil)
		req.Header.Set("Origin", "http://anything.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
