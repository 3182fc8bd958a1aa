package dto

// TrendingResponse represents the JSON response from /v1/finance/trending/{region}.
type TrendingResponse struct {
	Finance struct {
		Result []struct {
			Count  int `json:"count"`
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
		Error *Error `json:"error"`
	} `json:"finance"`
}
