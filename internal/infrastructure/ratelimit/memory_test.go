package ratelimit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_AllowsBurstThenDenies(t *testing.T) {
	m := NewMemory(3, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "login:a@b.co")
		assert.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}
	ok, _ := m.Allow(ctx, "login:a@b.co")
	assert.False(t, ok)

	ok, _ = m.Allow(ctx, "login:c@d.co")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute + time.Second)
	for i := 0; i < 3; i++ {
		ok, _ = m.Allow(ctx, "login:a@b.co")
		assert.True(t, ok, "refilled attempt %d", i+1)
	}
}

func TestMemory_SweepsIdleBuckets(t *testing.T) {
	m := NewMemory(1, time.Second)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1100; i++ {
		_, _ = m.Allow(ctx, strconv.Itoa(i))
	}
	now = now.Add(time.Minute)
	_, _ = m.Allow(ctx, "fresh")

	assert.Len(t, m.buckets, 1)
}
