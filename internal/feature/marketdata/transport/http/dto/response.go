// Package dto defines HTTP response DTOs for the marketdata feature.
package dto

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// StockHistoryResponse は履歴データ1件のレスポンスDTOです。
type StockHistoryResponse struct {
	Date     string  `json:"date"`     // RFC3339（UTC）
	Open     float64 `json:"open"`     // 始値
	High     float64 `json:"high"`     // 高値
	Low      float64 `json:"low"`      // 安値
	Close    float64 `json:"close"`    // 終値
	Volume   int64   `json:"volume"`   // 出来高
	AdjClose float64 `json:"adjClose"` // 調整後終値
}
