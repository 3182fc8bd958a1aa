package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/semaphore"

	"marketdata_backend/internal/feature/marketdata/usecase"
	"marketdata_backend/internal/platform/externalapi/yahoo/dto"
	"marketdata_backend/internal/shared/clock"
	"marketdata_backend/internal/shared/ratelimiter"
)

// crumbPath returns the anti-CSRF token tied to the session cookie.
const crumbPath = "/v1/test/getcrumb"

// StatusError is returned when the upstream answers with an HTTP status >= 400.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yahoo http %d", e.StatusCode)
}

// Client はYahoo Finance APIから市場データを取得するMarketDataProvider実装です。
// 同時実行数（semaphore）とリクエスト頻度（rate limiter）の両方で上流へのアクセスを絞ります。
//
// quote / quoteSummary はセッションCookieとcrumbが必要なため、初回利用時にハンドシェイクを行い
// crumbをキャッシュします。401/403が返った場合はcrumbを取り直して1回だけ再試行します。
type Client struct {
	cfg     Config
	client  *http.Client
	sem     *semaphore.Weighted
	limiter ratelimiter.RateLimiterInterface
	clock   clock.Clock

	crumbMu sync.Mutex
	crumb   string
}

// ClientがMarketDataProviderを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// client の Timeout は呼び出し側で cfg.Timeout に合わせて設定してください。
// client にCookieJarが無い場合は、Jarを付けたコピーを使用します。
func NewClient(cfg Config, client *http.Client) *Client {
	cfg = cfg.withDefaults()
	if client.Jar == nil {
		// cookiejar.New はオプションの誤りでのみエラーを返す
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		hc := *client
		hc.Jar = jar
		client = &hc
	}
	return &Client{
		cfg:     cfg,
		client:  client,
		sem:     semaphore.NewWeighted(int64(cfg.MaxConcurrency)),
		limiter: ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute),
		clock:   clock.Real{},
	}
}

// Search は銘柄検索（/v1/finance/search）を呼び出します。
func (c *Client) Search(ctx context.Context, query string, quotesCount, newsCount int) ([]usecase.RawSearchQuote, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(quotesCount))
	q.Set("newsCount", strconv.Itoa(newsCount))

	var body dto.SearchResponse
	if err := c.get(ctx, "/v1/finance/search", q, &body); err != nil {
		return nil, err
	}

	out := make([]usecase.RawSearchQuote, 0, len(body.Quotes))
	for _, sq := range body.Quotes {
		out = append(out, usecase.RawSearchQuote{
			Symbol:    sq.Symbol,
			ShortName: sq.ShortName,
			LongName:  sq.LongName,
			Exchange:  sq.Exchange,
			Currency:  sq.Currency,
			MarketCap: sq.MarketCap,
			Sector:    sq.Sector,
			Industry:  sq.Industry,
		})
	}
	return out, nil
}

// Quote は株価スナップショット（/v7/finance/quote）を取得します。
func (c *Client) Quote(ctx context.Context, symbol string) (*usecase.RawQuote, error) {
	q := url.Values{}
	q.Set("symbols", symbol)

	var body dto.QuoteResponse
	if err := c.getWithCrumb(ctx, "/v7/finance/quote", q, &body); err != nil {
		return nil, err
	}
	if err := envelopeError(body.QuoteResponse.Error); err != nil {
		return nil, err
	}
	if len(body.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote for %s", symbol)
	}

	r := body.QuoteResponse.Result[0]
	return &usecase.RawQuote{
		Symbol:                     r.Symbol,
		ShortName:                  r.ShortName,
		LongName:                   r.LongName,
		Currency:                   r.Currency,
		RegularMarketPrice:         r.RegularMarketPrice,
		RegularMarketChange:        r.RegularMarketChange,
		RegularMarketChangePercent: r.RegularMarketChangePercent,
		RegularMarketPreviousClose: r.RegularMarketPreviousClose,
		RegularMarketOpen:          r.RegularMarketOpen,
		RegularMarketDayHigh:       r.RegularMarketDayHigh,
		RegularMarketDayLow:        r.RegularMarketDayLow,
		RegularMarketVolume:        r.RegularMarketVolume,
		MarketCap:                  r.MarketCap,
	}, nil
}

// QuoteSummary は企業概要（/v10/finance/quoteSummary）を取得し、要求したモジュールを平坦化して返します。
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules []string) (*usecase.RawQuoteSummary, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))

	var body dto.QuoteSummaryResponse
	if err := c.getWithCrumb(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &body); err != nil {
		return nil, err
	}
	if err := envelopeError(body.QuoteSummary.Error); err != nil {
		return nil, err
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote summary for %s", symbol)
	}

	r := body.QuoteSummary.Result[0]
	out := &usecase.RawQuoteSummary{}
	if p := r.Price; p != nil {
		out.LongName = p.LongName
		out.ShortName = p.ShortName
		out.ExchangeName = p.ExchangeName
		out.Currency = p.Currency
	}
	if d := r.SummaryDetail; d != nil {
		if d.MarketCap != nil {
			out.MarketCap = d.MarketCap.Raw
		}
		if out.Currency == nil {
			out.Currency = d.Currency
		}
	}
	if a := r.AssetProfile; a != nil {
		out.Sector = a.Sector
		out.Industry = a.Industry
		out.Country = a.Country
		out.Website = a.Website
		out.LongBusinessSummary = a.LongBusinessSummary
		out.FullTimeEmployees = a.FullTimeEmployees
		out.FoundingDate = a.FoundingDate
	}
	return out, nil
}

// Historical はperiod1から現在までのローソク足（/v8/finance/chart）を取得します。
// 日付はUTCのUNIX秒から変換します。
func (c *Client) Historical(ctx context.Context, symbol string, period1 time.Time, interval string) ([]usecase.RawBar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(period1.Unix(), 10))
	q.Set("period2", strconv.FormatInt(c.clock.Now().Unix(), 10))
	q.Set("interval", interval)
	q.Set("events", "div,split")

	var body dto.ChartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, &body); err != nil {
		return nil, err
	}
	if err := envelopeError(body.Chart.Error); err != nil {
		return nil, err
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no chart for %s", symbol)
	}

	r := body.Chart.Result[0]
	var open, high, low, closes, adj []*float64
	var volume []*int64
	if len(r.Indicators.Quote) > 0 {
		iq := r.Indicators.Quote[0]
		open, high, low, closes, volume = iq.Open, iq.High, iq.Low, iq.Close, iq.Volume
	}
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]usecase.RawBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		bars = append(bars, usecase.RawBar{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     at(open, i),
			High:     at(high, i),
			Low:      at(low, i),
			Close:    at(closes, i),
			AdjClose: at(adj, i),
			Volume:   at(volume, i),
		})
	}
	return bars, nil
}

// Trending は地域別のトレンド銘柄（/v1/finance/trending）を取得します。
func (c *Client) Trending(ctx context.Context, region string, count int) ([]usecase.RawTrendingQuote, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))

	var body dto.TrendingResponse
	if err := c.get(ctx, "/v1/finance/trending/"+url.PathEscape(region), q, &body); err != nil {
		return nil, err
	}
	if err := envelopeError(body.Finance.Error); err != nil {
		return nil, err
	}

	var out []usecase.RawTrendingQuote
	for _, res := range body.Finance.Result {
		for _, tq := range res.Quotes {
			out = append(out, usecase.RawTrendingQuote{Symbol: tq.Symbol})
		}
	}
	return out, nil
}

// get はGETリクエストを送信し、JSONレスポンスをoutにデコードします。
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())
	return c.send(ctx, u, func(res *http.Response) error {
		if res.StatusCode >= 400 {
			return &StatusError{StatusCode: res.StatusCode}
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("yahoo: decode %s: %w", path, err)
		}
		return nil
	})
}

// getWithCrumb はcrumbを付与してgetを呼び出します。
// 認証エラーの場合はcrumbを破棄して取り直し、1回だけ再試行します。
func (c *Client) getWithCrumb(ctx context.Context, path string, q url.Values, out any) error {
	for attempt := 0; ; attempt++ {
		crumb, err := c.sessionCrumb(ctx)
		if err != nil {
			return err
		}
		q.Set("crumb", crumb)

		err = c.get(ctx, path, q, out)
		var se *StatusError
		if attempt == 0 && errors.As(err, &se) &&
			(se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
			slog.Info("yahoo crumb rejected, refreshing", "path", path, "status", se.StatusCode)
			c.invalidateCrumb(crumb)
			continue
		}
		return err
	}
}

// sessionCrumb はキャッシュ済みのcrumbを返します。未取得の場合はCookieを取得してからcrumbを要求します。
func (c *Client) sessionCrumb(ctx context.Context) (string, error) {
	c.crumbMu.Lock()
	defer c.crumbMu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	// Cookieの発行のみが目的のため、ステータスコードは問わない（通常404）
	if err := c.send(ctx, c.cfg.CookieURL, func(*http.Response) error { return nil }); err != nil {
		return "", fmt.Errorf("yahoo: session cookie: %w", err)
	}

	var crumb string
	err := c.send(ctx, c.cfg.BaseURL+crumbPath, func(res *http.Response) error {
		if res.StatusCode >= 400 {
			return &StatusError{StatusCode: res.StatusCode}
		}
		b, err := io.ReadAll(io.LimitReader(res.Body, 1024))
		if err != nil {
			return err
		}
		crumb = strings.TrimSpace(string(b))
		if crumb == "" || strings.HasPrefix(crumb, "<") {
			return errors.New("empty crumb")
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("yahoo: crumb: %w", err)
	}

	c.crumb = crumb
	return crumb, nil
}

// invalidateCrumb は stale が現在のcrumbである場合のみ破棄します（並行して更新済みなら何もしない）。
func (c *Client) invalidateCrumb(stale string) {
	c.crumbMu.Lock()
	defer c.crumbMu.Unlock()
	if c.crumb == stale {
		c.crumb = ""
	}
}

// send はスロットリングを適用してGETリクエストを送信し、レスポンスをhandleに渡します。
func (c *Client) send(ctx context.Context, rawURL string, handle func(*http.Response) error) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	if err := c.limiter.WaitIfNeeded(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	return handle(res)
}

func envelopeError(e *dto.Error) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
}

// at returns s[i], or nil when the series is shorter than the timestamps.
func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}
