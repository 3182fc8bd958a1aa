package usecase

import (
	"marketdata_backend/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultCurrency is used when the provider omits the currency.
	DefaultCurrency = "JPY"
	// DefaultCountry is used when the provider omits the country.
	DefaultCountry = "Japan"
)

// coalesce returns the first value that is present and non-zero, or def.
// Every missing-field default in this package goes through it.
func coalesce[T comparable](def T, vals ...*T) T {
	var zero T
	for _, v := range vals {
		if v != nil && *v != zero {
			return *v
		}
	}
	return def
}

// displayName falls back from long name to short name to the symbol itself.
func displayName(symbol string, longName, shortName *string) string {
	return coalesce(symbol, longName, shortName)
}

func shapeSearchQuote(q RawSearchQuote) entity.StockInfo {
	symbol := coalesce("", q.Symbol)
	return entity.StockInfo{
		Symbol:    symbol,
		Name:      displayName(symbol, q.LongName, q.ShortName),
		Exchange:  coalesce("", q.Exchange),
		Currency:  coalesce(DefaultCurrency, q.Currency),
		MarketCap: q.MarketCap,
		Sector:    coalesce("", q.Sector),
		Industry:  coalesce("", q.Industry),
		Country:   coalesce(DefaultCountry, q.Country),
		Website:   coalesce("", q.Website),
	}
}

func shapeQuoteSummary(symbol string, s *RawQuoteSummary) entity.StockInfo {
	if s == nil {
		s = &RawQuoteSummary{}
	}
	return entity.StockInfo{
		Symbol:      symbol,
		Name:        displayName(symbol, s.LongName, s.ShortName),
		Exchange:    coalesce("", s.ExchangeName),
		Currency:    coalesce(DefaultCurrency, s.Currency),
		MarketCap:   s.MarketCap,
		Sector:      coalesce("", s.Sector),
		Industry:    coalesce("", s.Industry),
		Country:     coalesce(DefaultCountry, s.Country),
		Website:     coalesce("", s.Website),
		Description: coalesce("", s.LongBusinessSummary),
		Employees:   s.FullTimeEmployees,
		Founded:     coalesce("", s.FoundingDate),
	}
}

// shapeQuote builds a StockPrice; every numeric field defaults to 0.
func shapeQuote(symbol string, q *RawQuote) entity.StockPrice {
	if q == nil {
		q = &RawQuote{}
	}
	return entity.StockPrice{
		Symbol:        symbol,
		Price:         coalesce(0, q.RegularMarketPrice),
		Change:        coalesce(0, q.RegularMarketChange),
		ChangePercent: coalesce(0, q.RegularMarketChangePercent),
		PreviousClose: coalesce(0, q.RegularMarketPreviousClose),
		Open:          coalesce(0, q.RegularMarketOpen),
		High:          coalesce(0, q.RegularMarketDayHigh),
		Low:           coalesce(0, q.RegularMarketDayLow),
		Volume:        coalesce(0, q.RegularMarketVolume),
		MarketCap:     q.MarketCap,
		Currency:      coalesce(DefaultCurrency, q.Currency),
	}
}

// shapeBar builds a StockHistory record; adjusted close falls back to close.
func shapeBar(b RawBar) entity.StockHistory {
	return entity.StockHistory{
		Date:     b.Date,
		Open:     coalesce(0, b.Open),
		High:     coalesce(0, b.High),
		Low:      coalesce(0, b.Low),
		Close:    coalesce(0, b.Close),
		Volume:   coalesce(0, b.Volume),
		AdjClose: coalesce(0, b.AdjClose, b.Close),
	}
}

func shapeIndex(symbol, name string, q *RawQuote) entity.IndexSnapshot {
	p := shapeQuote(symbol, q)
	return entity.IndexSnapshot{
		Symbol:        symbol,
		Name:          name,
		Price:         p.Price,
		Change:        p.Change,
		ChangePercent: p.ChangePercent,
	}
}
