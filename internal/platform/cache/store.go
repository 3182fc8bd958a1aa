// Package cache provides the key-value cache used by the market data aggregator.
//
// Service is the entry point: it serializes values to JSON and degrades every
// backend failure to a cache miss. Store implementations hold the raw bytes.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by a Store when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a byte-oriented key-value store with per-entry expiry.
type Store interface {
	// Get returns the value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del removes key. Removing an absent key is not an error.
	Del(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
