package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"marketdata_backend/internal/feature/marketdata/domain/entity"
	"marketdata_backend/internal/feature/marketdata/domain/tradingsession"
	"marketdata_backend/internal/shared/clock"
)

// Cache TTLs per data view.
const (
	TTLStockInfo    = 3600 * time.Second // 銘柄の存在・属性はほとんど変わらない
	TTLStockPrice   = 60 * time.Second   // 最も鮮度が求められる
	TTLStockHistory = 1800 * time.Second
	TTLMarketStatus = 300 * time.Second
	TTLTrending     = 600 * time.Second
)

const (
	// DefaultSearchLimit はsearchStocksのデフォルト件数です。
	DefaultSearchLimit = 10
	// DefaultTrendingLimit はgetTrendingStocksのデフォルト件数です。
	DefaultTrendingLimit = 20
	// DefaultPeriod は履歴取得のデフォルト期間です。
	DefaultPeriod = "1mo"
	// DefaultInterval は履歴取得のデフォルト足です。
	DefaultInterval = "1d"
	// DefaultTrendingRegion はトレンド銘柄の対象国です。
	DefaultTrendingRegion = "JP"
)

// quoteSummaryModules are requested by GetStockInfo.
var quoteSummaryModules = []string{"summaryDetail", "assetProfile", "price"}

// benchmark is an index reported by GetMarketStatus.
type benchmark struct {
	key    string
	symbol string
	name   string
}

var benchmarks = []benchmark{
	{key: "nikkei", symbol: "^N225", name: "Nikkei 225"},
	{key: "topix", symbol: "^TPX", name: "TOPIX"},
}

const (
	sourceCache = "cache"
	sourceAPI   = "api"
)

// Cache is the read/write key-value cache used by the aggregator.
// Get never fails: an unavailable backend is reported as a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	BuildKey(tag string, args ...string) string
}

// Recorder observes completed operations (e.g., for metrics).
type Recorder interface {
	ObserveOperation(op, source string, d time.Duration, err error)
}

// MarketDataUsecase aggregates market data views over an upstream provider.
// Each operation is an independent read-through: cache → provider → shape → cache.
type MarketDataUsecase struct {
	provider MarketDataProvider
	cache    Cache
	clock    clock.Clock
	recorder Recorder
	logger   *slog.Logger
	region   string
}

// Option configures a MarketDataUsecase.
type Option func(*MarketDataUsecase)

// WithClock sets the time source used for timestamps, history windows and session windows.
func WithClock(c clock.Clock) Option {
	return func(u *MarketDataUsecase) {
		if c != nil {
			u.clock = c
		}
	}
}

// WithRecorder sets the operation recorder.
func WithRecorder(r Recorder) Option {
	return func(u *MarketDataUsecase) { u.recorder = r }
}

// WithLogger sets the logger. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(u *MarketDataUsecase) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithTrendingRegion sets the country scope of the trending list.
func WithTrendingRegion(region string) Option {
	return func(u *MarketDataUsecase) {
		if region != "" {
			u.region = region
		}
	}
}

// NewMarketDataUsecase creates a new MarketDataUsecase.
func NewMarketDataUsecase(provider MarketDataProvider, cache Cache, opts ...Option) *MarketDataUsecase {
	u := &MarketDataUsecase{
		provider: provider,
		cache:    cache,
		clock:    clock.Real{},
		logger:   slog.Default(),
		region:   DefaultTrendingRegion,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// request describes one read-through call.
type request struct {
	op      string
	key     string
	ttl     time.Duration
	failMsg string
	attrs   []any
}

// readThrough returns the cached value for req.key, or calls fetch, caches its result and returns it.
// fetch errors are logged and normalized to *UpstreamError.
func readThrough[T any](ctx context.Context, u *MarketDataUsecase, req request, fetch func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	var out T
	if u.cache.Get(ctx, req.key, &out) {
		u.done(req, sourceCache, start, nil)
		return out, nil
	}

	out, err := fetch(ctx)
	if err != nil {
		u.logger.Error(req.failMsg, append([]any{"op", req.op, "error", err}, req.attrs...)...)
		u.done(req, sourceAPI, start, err)
		var zero T
		return zero, &UpstreamError{Op: req.op, Message: req.failMsg}
	}

	u.cache.Set(ctx, req.key, out, req.ttl)
	u.done(req, sourceAPI, start, nil)
	return out, nil
}

func (u *MarketDataUsecase) done(req request, source string, start time.Time, err error) {
	d := time.Since(start)
	if err == nil {
		u.logger.Debug("market data operation", append([]any{"op", req.op, "source", source, "duration", d}, req.attrs...)...)
	}
	if u.recorder != nil {
		u.recorder.ObserveOperation(req.op, source, d, err)
	}
}

// SearchStocks searches symbols by code or company name. An empty result is not an error.
func (u *MarketDataUsecase) SearchStocks(ctx context.Context, query string, limit int) ([]entity.StockInfo, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	req := request{
		op:      "searchStocks",
		key:     u.cache.BuildKey("search", query, strconv.Itoa(limit)),
		ttl:     TTLStockInfo,
		failMsg: "failed to search stocks",
		attrs:   []any{"query", query, "limit", limit},
	}
	return readThrough(ctx, u, req, func(ctx context.Context) ([]entity.StockInfo, error) {
		quotes, err := u.provider.Search(ctx, query, limit, 0)
		if err != nil {
			return nil, err
		}
		out := make([]entity.StockInfo, 0, len(quotes))
		for _, q := range quotes {
			out = append(out, shapeSearchQuote(q))
		}
		return out, nil
	})
}

// GetStockInfo returns detailed information about symbol.
func (u *MarketDataUsecase) GetStockInfo(ctx context.Context, symbol string) (entity.StockInfo, error) {
	req := request{
		op:      "getStockInfo",
		key:     u.cache.BuildKey("info", symbol),
		ttl:     TTLStockInfo,
		failMsg: fmt.Sprintf("failed to get stock info for %s", symbol),
		attrs:   []any{"symbol", symbol},
	}
	return readThrough(ctx, u, req, func(ctx context.Context) (entity.StockInfo, error) {
		s, err := u.provider.QuoteSummary(ctx, symbol, quoteSummaryModules)
		if err != nil {
			return entity.StockInfo{}, err
		}
		return shapeQuoteSummary(symbol, s), nil
	})
}

// GetStockPrice returns the current quote of symbol, stamped with the fetch time.
func (u *MarketDataUsecase) GetStockPrice(ctx context.Context, symbol string) (entity.StockPrice, error) {
	req := request{
		op:      "getStockPrice",
		key:     u.cache.BuildKey("price", symbol),
		ttl:     TTLStockPrice,
		failMsg: fmt.Sprintf("failed to get stock price for %s", symbol),
		attrs:   []any{"symbol", symbol},
	}
	return readThrough(ctx, u, req, func(ctx context.Context) (entity.StockPrice, error) {
		q, err := u.provider.Quote(ctx, symbol)
		if err != nil {
			return entity.StockPrice{}, err
		}
		p := shapeQuote(symbol, q)
		p.Timestamp = u.clock.Now()
		return p, nil
	})
}

// GetStockHistory returns chronologically ordered bars of symbol covering period.
func (u *MarketDataUsecase) GetStockHistory(ctx context.Context, symbol, period, interval string) ([]entity.StockHistory, error) {
	if period == "" {
		period = DefaultPeriod
	}
	if interval == "" {
		interval = DefaultInterval
	}
	req := request{
		op:      "getStockHistory",
		key:     u.cache.BuildKey("history", symbol, period, interval),
		ttl:     TTLStockHistory,
		failMsg: fmt.Sprintf("failed to get stock history for %s (period %s)", symbol, period),
		attrs:   []any{"symbol", symbol, "period", period, "interval", interval},
	}
	return readThrough(ctx, u, req, func(ctx context.Context) ([]entity.StockHistory, error) {
		bars, err := u.provider.Historical(ctx, symbol, PeriodStart(u.clock.Now(), period), interval)
		if err != nil {
			return nil, err
		}
		out := make([]entity.StockHistory, 0, len(bars))
		for _, b := range bars {
			out = append(out, shapeBar(b))
		}
		slices.SortStableFunc(out, func(a, b entity.StockHistory) int {
			return a.Date.Compare(b.Date)
		})
		return out, nil
	})
}

// GetMarketStatus reports whether the exchange is open and the state of its benchmark indices.
func (u *MarketDataUsecase) GetMarketStatus(ctx context.Context) (entity.MarketStatus, error) {
	req := request{
		op:      "getMarketStatus",
		key:     u.cache.BuildKey("market", "status"),
		ttl:     TTLMarketStatus,
		failMsg: "failed to get market status",
	}
	return readThrough(ctx, u, req, func(ctx context.Context) (entity.MarketStatus, error) {
		quotes := make([]*RawQuote, len(benchmarks))
		g, gctx := errgroup.WithContext(ctx)
		for i, b := range benchmarks {
			g.Go(func() error {
				q, err := u.provider.Quote(gctx, b.symbol)
				if err != nil {
					return fmt.Errorf("quote %s: %w", b.symbol, err)
				}
				quotes[i] = q
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return entity.MarketStatus{}, err
		}

		now := u.clock.Now()
		indices := make(map[string]entity.IndexSnapshot, len(benchmarks))
		for i, b := range benchmarks {
			indices[b.key] = shapeIndex(b.symbol, b.name, quotes[i])
		}
		return entity.MarketStatus{
			IsOpen:    tradingsession.IsOpen(now),
			Timezone:  tradingsession.TimezoneName,
			NextOpen:  tradingsession.NextOpen(now),
			NextClose: tradingsession.NextClose(now),
			Indices:   indices,
			Timestamp: now,
		}, nil
	})
}

// GetTrendingStocks returns the trending list joined with live prices.
// A failed price lookup yields a zero-filled entry instead of failing the whole list.
func (u *MarketDataUsecase) GetTrendingStocks(ctx context.Context, limit int) ([]entity.TrendingStock, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	req := request{
		op:      "getTrendingStocks",
		key:     u.cache.BuildKey("trending", strconv.Itoa(limit)),
		ttl:     TTLTrending,
		failMsg: "failed to get trending stocks",
		attrs:   []any{"limit", limit, "region", u.region},
	}
	return readThrough(ctx, u, req, func(ctx context.Context) ([]entity.TrendingStock, error) {
		quotes, err := u.provider.Trending(ctx, u.region, limit)
		if err != nil {
			return nil, err
		}
		if len(quotes) > limit {
			quotes = quotes[:limit]
		}

		out := make([]entity.TrendingStock, len(quotes))
		// 全銘柄の結果を待つ（1銘柄の失敗で他を止めない）ため、各goroutineはnilを返す
		var g errgroup.Group
		for i, q := range quotes {
			g.Go(func() error {
				out[i] = entity.TrendingStock{
					Symbol: q.Symbol,
					Name:   displayName(q.Symbol, q.LongName, q.ShortName),
					Rank:   i + 1,
				}
				p, err := u.GetStockPrice(ctx, q.Symbol)
				if err != nil {
					u.logger.Warn("trending price lookup failed", "symbol", q.Symbol, "error", err)
					return nil
				}
				out[i].Price = p.Price
				out[i].Change = p.Change
				out[i].ChangePercent = p.ChangePercent
				out[i].Volume = p.Volume
				return nil
			})
		}
		_ = g.Wait()
		return out, nil
	})
}
