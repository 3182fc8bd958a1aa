// Package dto defines data transfer objects for the Yahoo Finance API responses.
// Every field the API may omit or send as null is a pointer.
package dto

// Error is the error object embedded in most Yahoo Finance envelopes.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RawValue is a formatted numeric field, e.g. {"raw": 4.5e13, "fmt": "45T"}.
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt,omitempty"`
}
