package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"marketdata_backend/internal/feature/marketdata/usecase"
)

// ErrUpstream はモックプロバイダが返す共通のエラーです。
var ErrUpstream = errors.New("upstream unavailable")

// mockProvider はMarketDataProviderインターフェースのモック実装です。
// トレンド取得では並行に呼ばれるため、呼び出し回数はmutexで保護します。
type mockProvider struct {
	SearchFunc       func(ctx context.Context, query string, quotesCount, newsCount int) ([]usecase.RawSearchQuote, error)
	QuoteFunc        func(ctx context.Context, symbol string) (*usecase.RawQuote, error)
	QuoteSummaryFunc func(ctx context.Context, symbol string, modules []string) (*usecase.RawQuoteSummary, error)
	HistoricalFunc   func(ctx context.Context, symbol string, period1 time.Time, interval string) ([]usecase.RawBar, error)
	TrendingFunc     func(ctx context.Context, region string, count int) ([]usecase.RawTrendingQuote, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *mockProvider) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
}

// Calls は指定した操作の呼び出し回数を返します。
func (m *mockProvider) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockProvider) Search(ctx context.Context, query string, quotesCount, newsCount int) ([]usecase.RawSearchQuote, error) {
	m.record("Search")
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, quotesCount, newsCount)
	}
	return nil, errors.New("SearchFunc is not implemented")
}

func (m *mockProvider) Quote(ctx context.Context, symbol string) (*usecase.RawQuote, error) {
	m.record("Quote")
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, symbol)
	}
	return nil, errors.New("QuoteFunc is not implemented")
}

func (m *mockProvider) QuoteSummary(ctx context.Context, symbol string, modules []string) (*usecase.RawQuoteSummary, error) {
	m.record("QuoteSummary")
	if m.QuoteSummaryFunc != nil {
		return m.QuoteSummaryFunc(ctx, symbol, modules)
	}
	return nil, errors.New("QuoteSummaryFunc is not implemented")
}

func (m *mockProvider) Historical(ctx context.Context, symbol string, period1 time.Time, interval string) ([]usecase.RawBar, error) {
	m.record("Historical")
	if m.HistoricalFunc != nil {
		return m.HistoricalFunc(ctx, symbol, period1, interval)
	}
	return nil, errors.New("HistoricalFunc is not implemented")
}

func (m *mockProvider) Trending(ctx context.Context, region string, count int) ([]usecase.RawTrendingQuote, error) {
	m.record("Trending")
	if m.TrendingFunc != nil {
		return m.TrendingFunc(ctx, region, count)
	}
	return nil, errors.New("TrendingFunc is not implemented")
}

// memCache はCacheインターフェースのインメモリ実装です。
// 本物のキャッシュと同様に値をJSONでコピーして保持します（TTLは記録のみで失効させません）。
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *memCache) Set(_ context.Context, key string, value any, ttl time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.ttls[key] = ttl
}

func (c *memCache) BuildKey(tag string, args ...string) string {
	return strings.Join(append([]string{tag}, args...), ":")
}

// TTL は指定キーに設定されたTTLを返します。
func (c *memCache) TTL(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.ttls[key]
	return d, ok
}

// recorderCall はrecordingRecorderが記録する1回分の観測値です。
type recorderCall struct {
	op     string
	source string
	failed bool
}

// recordingRecorder はRecorderインターフェースのテスト用実装です。
type recordingRecorder struct {
	mu    sync.Mutex
	calls []recorderCall
}

func (r *recordingRecorder) ObserveOperation(op, source string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recorderCall{op: op, source: source, failed: err != nil})
}

func ptr[T any](v T) *T { return &v }
