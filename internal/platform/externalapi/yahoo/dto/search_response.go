package dto

// SearchResponse represents the JSON response from /v1/finance/search.
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

// SearchQuote is one entry of SearchResponse.Quotes. Name fields are lowercase on this endpoint.
type SearchQuote struct {
	Symbol    *string  `json:"symbol"`
	ShortName *string  `json:"shortname"`
	LongName  *string  `json:"longname"`
	Exchange  *string  `json:"exchange"`
	QuoteType *string  `json:"quoteType"`
	Currency  *string  `json:"currency"`
	MarketCap *float64 `json:"marketCap"`
	Sector    *string  `json:"sector"`
	Industry  *string  `json:"industry"`
}
