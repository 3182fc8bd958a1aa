package dto

// QuoteSummaryResponse represents the JSON response from /v10/finance/quoteSummary/{symbol}.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *Error               `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummaryResult holds the requested modules; modules not requested are nil.
type QuoteSummaryResult struct {
	Price         *PriceModule         `json:"price"`
	SummaryDetail *SummaryDetailModule `json:"summaryDetail"`
	AssetProfile  *AssetProfileModule  `json:"assetProfile"`
}

// PriceModule is the "price" module.
type PriceModule struct {
	LongName     *string `json:"longName"`
	ShortName    *string `json:"shortName"`
	ExchangeName *string `json:"exchangeName"`
	Currency     *string `json:"currency"`
}

// SummaryDetailModule is the "summaryDetail" module.
type SummaryDetailModule struct {
	MarketCap *RawValue `json:"marketCap"`
	Currency  *string   `json:"currency"`
}

// AssetProfileModule is the "assetProfile" module.
type AssetProfileModule struct {
	Sector              *string `json:"sector"`
	Industry            *string `json:"industry"`
	Country             *string `json:"country"`
	Website             *string `json:"website"`
	LongBusinessSummary *string `json:"longBusinessSummary"`
	FullTimeEmployees   *int64  `json:"fullTimeEmployees"`
	FoundingDate        *string `json:"foundingDate"`
}
