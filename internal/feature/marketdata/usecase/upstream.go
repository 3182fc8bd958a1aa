package usecase

import (
	"context"
	"time"
)

// MarketDataProvider abstracts the upstream financial-data source.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
// Returned records are loosely typed: any field may be nil when the provider omits it.
type MarketDataProvider interface {
	// Search looks up symbols matching query.
	Search(ctx context.Context, query string, quotesCount, newsCount int) ([]RawSearchQuote, error)
	// Quote returns a simple quote snapshot for symbol.
	Quote(ctx context.Context, symbol string) (*RawQuote, error)
	// QuoteSummary returns the richer profile of symbol built from the requested modules.
	QuoteSummary(ctx context.Context, symbol string, modules []string) (*RawQuoteSummary, error)
	// Historical returns bars for symbol from period1 until now at the given interval.
	Historical(ctx context.Context, symbol string, period1 time.Time, interval string) ([]RawBar, error)
	// Trending returns the trending symbols of a region, at most count entries.
	Trending(ctx context.Context, region string, count int) ([]RawTrendingQuote, error)
}

// RawSearchQuote is one search hit as reported upstream.
type RawSearchQuote struct {
	Symbol    *string
	ShortName *string
	LongName  *string
	Exchange  *string
	Currency  *string
	MarketCap *float64
	Sector    *string
	Industry  *string
	Country   *string
	Website   *string
}

// RawQuote is a quote snapshot as reported upstream.
type RawQuote struct {
	Symbol                     *string
	ShortName                  *string
	LongName                   *string
	Currency                   *string
	RegularMarketPrice         *float64
	RegularMarketChange        *float64
	RegularMarketChangePercent *float64
	RegularMarketPreviousClose *float64
	RegularMarketOpen          *float64
	RegularMarketDayHigh       *float64
	RegularMarketDayLow        *float64
	RegularMarketVolume        *int64
	MarketCap                  *float64
}

// RawQuoteSummary flattens the price, summaryDetail and assetProfile modules.
type RawQuoteSummary struct {
	LongName            *string
	ShortName           *string
	ExchangeName        *string
	Currency            *string
	MarketCap           *float64
	Sector              *string
	Industry            *string
	Country             *string
	Website             *string
	LongBusinessSummary *string
	FullTimeEmployees   *int64
	FoundingDate        *string
}

// RawBar is one historical bar as reported upstream.
type RawBar struct {
	Date     time.Time
	Open     *float64
	High     *float64
	Low      *float64
	Close    *float64
	AdjClose *float64
	Volume   *int64
}

// RawTrendingQuote is one entry of the upstream trending list.
type RawTrendingQuote struct {
	Symbol    string
	ShortName *string
	LongName  *string
}
