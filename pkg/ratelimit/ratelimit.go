// Package ratelimit implements fixed-window per-key request caps.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result describes the state of a key after a request was counted
type Result struct {
	Allowed   bool
	Count     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts requests per key inside a fixed window
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps counters in process memory. State is lost on restart and is not
// shared between instances.
type MemoryLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// WithClock replaces the time source (used by tests)
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(l.period)}
		l.windows[key] = w
		return Result{Allowed: true, Count: 1, Remaining: l.limit - 1, ResetAt: w.resetAt}, nil
	}

	if w.count >= l.limit {
		return Result{Allowed: false, Count: w.count, Remaining: 0, ResetAt: w.resetAt}, nil
	}

	w.count++
	return Result{Allowed: true, Count: w.count, Remaining: l.limit - w.count, ResetAt: w.resetAt}, nil
}

// Sweep drops expired windows so the map does not grow without bound
func (l *MemoryLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}
