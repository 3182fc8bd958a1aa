package dto

// QuoteResponse represents the JSON response from /v7/finance/quote.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []Quote `json:"result"`
		Error  *Error  `json:"error"`
	} `json:"quoteResponse"`
}

// Quote is a single quote snapshot.
type Quote struct {
	Symbol                     *string  `json:"symbol"`
	ShortName                  *string  `json:"shortName"`
	LongName                   *string  `json:"longName"`
	Currency                   *string  `json:"currency"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
	MarketCap                  *float64 `json:"marketCap"`
}
