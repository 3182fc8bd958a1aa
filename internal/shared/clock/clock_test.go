package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AdvanceAndSet(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	f := NewFake(start)
	assert.Equal(t, start, f.Now())

	f.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), f.Now())

	later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f.Set(later)
	assert.Equal(t, later, f.Now())
}

func TestReal_Now(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := Real{}.Now()
	assert.False(t, got.Before(before), "Real.Now should not go backwards")
}
