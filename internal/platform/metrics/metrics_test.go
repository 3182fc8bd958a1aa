package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveOperation(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	r.ObserveOperation("getStockPrice", "api", 120*time.Millisecond, nil)
	r.ObserveOperation("getStockPrice", "cache", time.Millisecond, nil)
	r.ObserveOperation("getStockPrice", "cache", time.Millisecond, nil)
	r.ObserveOperation("getStockPrice", "api", time.Second, errors.New("boom"))

	assert.InDelta(t, 1, testutil.ToFloat64(r.operations.WithLabelValues("getStockPrice", "api", OutcomeSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.operations.WithLabelValues("getStockPrice", "cache", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.operations.WithLabelValues("getStockPrice", "api", OutcomeError)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestRecorder_Handler(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveOperation("getMarketStatus", "api", 10*time.Millisecond, nil)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `marketdata_operations_total{op="getMarketStatus",outcome="success",source="api"} 1`)
	assert.Contains(t, string(body), "marketdata_operation_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}
