package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"marketdata_backend/internal/feature/marketdata/usecase"
)

// DefaultOpTimeout bounds each store call so a hung backend degrades to a miss quickly.
const DefaultOpTimeout = 200 * time.Millisecond

// Service is the cache used by the market data aggregator.
// Backend failures are logged and reported as misses; they never reach the caller.
type Service struct {
	store     Store
	logger    *slog.Logger
	opTimeout time.Duration
}

var _ usecase.Cache = (*Service)(nil)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithOpTimeout sets the per-call store timeout. d <= 0 keeps DefaultOpTimeout.
func WithOpTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

// NewService creates a Service over store. A nil store disables caching (every Get misses).
func NewService(store Store, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger, opTimeout: DefaultOpTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// opContext derives the context for a single store call.
func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// Get decodes the value stored under key into dest and reports whether it was a hit.
// A corrupted entry is deleted (best effort) and treated as a miss.
func (s *Service) Get(ctx context.Context, key string, dest any) bool {
	// Bypass cache if no store is configured
	if s.store == nil {
		return false
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	b, err := s.store.Get(opCtx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			s.logger.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(b, dest); err != nil {
		s.logger.Warn("cache entry corrupted", "key", key, "error", err)
		_ = s.store.Del(opCtx, key)
		return false
	}
	return true
}

// Set stores value under key for ttl (best effort). A non-positive ttl stores nothing.
func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.store == nil || ttl <= 0 {
		return
	}

	b, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	opCtx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.store.Set(opCtx, key, b, ttl); err != nil {
		s.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// BuildKey builds a cache key; see the package-level BuildKey.
func (s *Service) BuildKey(tag string, args ...string) string {
	return BuildKey(tag, args...)
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if s.store == nil {
		return errors.New("cache store not configured")
	}
	opCtx, cancel := s.opContext(ctx)
	defer cancel()
	return s.store.Ping(opCtx)
}
