package dto

// ChartResponse represents the JSON response from /v8/finance/chart/{symbol}.
// Indicator arrays are parallel to Timestamp and may contain nulls.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *Error        `json:"error"`
	} `json:"chart"`
}

// ChartResult is the series of one symbol.
type ChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}
