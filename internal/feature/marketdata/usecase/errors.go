// Package usecase implements the market data aggregator: read-through caching over an
// upstream financial-data provider, response shaping, and market-session computation.
package usecase

import "errors"

// ErrUpstreamFailure is the single failure kind returned by the aggregator.
// Network errors, malformed upstream responses and provider-reported errors all collapse to it.
var ErrUpstreamFailure = errors.New("upstream failure")

// UpstreamError carries a human-readable message naming the failed operation and, where
// applicable, the symbol or period involved. It matches ErrUpstreamFailure via errors.Is.
// The provider's own error is logged, not exposed.
type UpstreamError struct {
	Op      string
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// Is reports whether target is ErrUpstreamFailure.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamFailure }
