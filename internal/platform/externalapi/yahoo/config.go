// Package yahoo provides a client for the Yahoo Finance HTTP API.
package yahoo

import "time"

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// DefaultCookieURL issues the session cookie required before a crumb can be requested.
const DefaultCookieURL = "https://fc.yahoo.com"

// Config holds configuration for the Yahoo Finance client.
// Each Client owns its Config; there is no package-level client state.
type Config struct {
	BaseURL           string        // Base URL for the API (e.g., "https://query2.finance.yahoo.com")
	Timeout           time.Duration // HTTP request timeout
	MaxConcurrency    int           // Maximum in-flight requests; Yahoo rejects bursts of parallel calls
	RequestsPerMinute int           // Request rate cap; 0 disables it
	UserAgent         string        // Sent on every request
	CookieURL         string        // Visited once to obtain the session cookie for the crumb handshake
}

// DefaultConfig returns the settings the upstream is known to tolerate: one request at a time, 30s timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           30 * time.Second,
		MaxConcurrency:    1,
		RequestsPerMinute: 60,
		UserAgent:         "Mozilla/5.0 (compatible; marketdata-backend/1.0)",
		CookieURL:         DefaultCookieURL,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = d.MaxConcurrency
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.CookieURL == "" {
		c.CookieURL = d.CookieURL
	}
	return c
}
