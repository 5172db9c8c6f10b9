package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides if a request from key should be allowed.
// Allow returns (allowed, retryAfterSeconds). When allowed is false, retryAfterSeconds
// may be set for the Retry-After response header (0 = omit).
type Limiter interface {
	Allow(key string) (allowed bool, retryAfterSec int)
}

// Noop allows all requests.
type Noop struct{}

func (Noop) Allow(key string) (bool, int) { return true, 0 }

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// InMemory keeps one token bucket per key (single-instance only).
// Each bucket refills at limit tokens per window with a burst of limit.
type InMemory struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	every     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	nowFunc   func() time.Time
}

// NewInMemory allows up to limit requests per key per window. limit below 1 is treated as 1.
func NewInMemory(limit int, window time.Duration) *InMemory {
	if limit < 1 {
		limit = 1
	}
	return &InMemory{
		buckets: make(map[string]*bucket),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
		nowFunc: time.Now,
	}
}

func (r *InMemory) Allow(key string) (allowed bool, retryAfterSec int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.nowFunc()
	r.sweep(now)

	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(r.every, r.burst)}
		r.buckets[key] = b
	}
	b.lastSeen = now

	res := b.lim.ReserveN(now, 1)
	if !res.OK() {
		return false, int(r.window.Seconds())
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	// Denied requests must not consume a future token.
	res.CancelAt(now)
	retryAfterSec = int(math.Ceil(delay.Seconds()))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}
	return false, retryAfterSec
}

// sweep drops buckets idle for longer than one window; an idle bucket is full again anyway.
// Runs at most once per window.
func (r *InMemory) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.window {
		return
	}
	r.lastSweep = now
	for k, b := range r.buckets {
		if now.Sub(b.lastSeen) > r.window {
			delete(r.buckets, k)
		}
	}
}

// Len reports the number of tracked keys.
func (r *InMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}
