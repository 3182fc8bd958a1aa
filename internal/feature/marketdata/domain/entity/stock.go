// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// StockInfo represents descriptive information about a listed security.
// Extended fields (Description, Employees, Founded) are only populated by detailed lookups.
type StockInfo struct {
	Symbol      string   `json:"symbol"`                // Ticker symbol (e.g., "7203.T")
	Name        string   `json:"name"`                  // Display name
	Exchange    string   `json:"exchange"`              // Exchange code or name (e.g., "TYO")
	Currency    string   `json:"currency"`              // Trading currency, "JPY" when unknown
	MarketCap   *float64 `json:"marketCap,omitempty"`   // Market capitalization
	Sector      string   `json:"sector,omitempty"`      // Sector
	Industry    string   `json:"industry,omitempty"`    // Industry
	Country     string   `json:"country"`               // Country, "Japan" when unknown
	Website     string   `json:"website,omitempty"`     // Corporate website
	Description string   `json:"description,omitempty"` // Business summary
	Employees   *int64   `json:"employees,omitempty"`   // Full-time employee count
	Founded     string   `json:"founded,omitempty"`     // Founding date as reported upstream
}

// StockPrice is a near-real-time quote snapshot.
// Numeric fields are 0 when the provider did not report them.
type StockPrice struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	PreviousClose float64   `json:"previousClose"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Volume        int64     `json:"volume"`
	MarketCap     *float64  `json:"marketCap,omitempty"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"` // when the quote was fetched, not an upstream time
}

// StockHistory represents OHLCV data for one trading interval.
type StockHistory struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	AdjClose float64   `json:"adjClose"`
}

// TrendingStock is one entry of the trending list.
type TrendingStock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	Rank          int     `json:"rank"` // 1-based position in the upstream list
}
