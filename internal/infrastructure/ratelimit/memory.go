// Package ratelimit holds the in-process rate limiter used when no shared
// backend is configured.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory keeps one token bucket per key. Buckets refill at max per window and
// allow a burst of max, which matches a fixed window closely enough for a
// single instance.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemory(max int, window time.Duration) *Memory {
	if max <= 0 {
		max = 1
	}
	return &Memory{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(max) / window.Seconds()),
		burst:   max,
		idle:    2 * window,
		now:     time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now
	allowed := b.limiter.AllowN(now, 1)

	m.sweep(now)
	return allowed, nil
}

// sweep forgets buckets that have been full for a while.
func (m *Memory) sweep(now time.Time) {
	if len(m.buckets) < 1024 {
		return
	}
	for k, b := range m.buckets {
		if now.Sub(b.lastSeen) > m.idle {
			delete(m.buckets, k)
		}
	}
}
