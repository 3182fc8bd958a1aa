package entity

import "time"

// IndexSnapshot is a point-in-time view of a market index.
type IndexSnapshot struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// MarketStatus describes whether the exchange is trading and the state of its benchmark indices.
type MarketStatus struct {
	IsOpen    bool                     `json:"isOpen"`
	Timezone  string                   `json:"timezone"`
	NextOpen  time.Time                `json:"nextOpen"`
	NextClose time.Time                `json:"nextClose"`
	Indices   map[string]IndexSnapshot `json:"indices"`
	Timestamp time.Time                `json:"timestamp"`
}
