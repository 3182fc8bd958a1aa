package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdata_backend/internal/shared/clock"
)

func TestMemoryStore_SetGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(clock.NewFake(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))

	value := []byte(`{"price":2500}`)
	require.NoError(t, s.Set(ctx, "price:7203", value, time.Minute))

	got, err := s.Get(ctx, "price:7203")
	require.NoError(t, err)
	assert.Equal(t, value, got)

	// 返された値を書き換えても保存値には影響しない
	got[0] = 'X'
	again, err := s.Get(ctx, "price:7203")
	require.NoError(t, err)
	assert.Equal(t, value, again)
}

func TestMemoryStore_Expiration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	s := NewMemoryStore(clk)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Second))

	clk.Advance(999 * time.Millisecond)
	_, err := s.Get(ctx, "k")
	require.NoError(t, err, "entry is alive before its ttl elapses")

	clk.Advance(time.Millisecond)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, s.Len(), "expired entry is removed on read")
}

func TestMemoryStore_MissAndDel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(nil)

	_, err := s.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, s.Del(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	assert.NoError(t, s.Del(ctx, "absent"))
	assert.NoError(t, s.Ping(ctx))
}

func TestMemoryStore_NonPositiveTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(nil)

	require.NoError(t, s.Set(ctx, "zero", []byte("v"), 0))
	require.NoError(t, s.Set(ctx, "negative", []byte("v"), -time.Second))
	assert.Equal(t, 0, s.Len())
}
