// Package ratelimit provides a fixed-window request throttle keyed by
// (identity, action).
//
// Fixed-window counting trades perfect burst smoothing for O(1) memory per
// key and O(1) per check, which is the right fit for a low-traffic site
// guarding against casual abuse rather than a high-throughput system.
package ratelimit

import (
	"sync"
	"time"
)

// windowRecord tracks request counts for one (identity, action) key within
// the current window. Once now passes resetAt the record is logically
// expired and is replaced lazily on the next access.
type windowRecord struct {
	count   int
	resetAt time.Time
}

// Limiter is a thread-safe fixed-window request counter. Construct instances
// explicitly with New; there is no package-level singleton, so tests can use
// isolated limiters and production can hold one per process.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*windowRecord
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source. Used by tests to simulate window
// expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New returns an empty Limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		windows: make(map[string]*windowRecord),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func key(identity, action string) string {
	return identity + ":" + action
}

// Allow reports whether one more request for the given action by the given
// identity fits within the window. The check and the increment happen under
// a single lock, so the stored count never exceeds maxRequests even under
// concurrent callers.
//
// Invalid input (empty identity or action, maxRequests < 1, window <= 0) is
// rejected by denying the request.
func (l *Limiter) Allow(identity, action string, maxRequests int, window time.Duration) bool {
	if identity == "" || action == "" || maxRequests < 1 || window <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.purgeLocked(now)

	k := key(identity, action)
	rec, ok := l.windows[k]
	if !ok || now.After(rec.resetAt) {
		l.windows[k] = &windowRecord{count: 1, resetAt: now.Add(window)}
		return true
	}
	if rec.count >= maxRequests {
		return false
	}
	rec.count++
	return true
}

// Remaining returns how many requests are left in the active window, or
// maxRequests when no active window exists. Pure read; no state changes.
func (l *Limiter) Remaining(identity, action string, maxRequests int) int {
	if maxRequests < 1 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.windows[key(identity, action)]
	if !ok || l.now().After(rec.resetAt) {
		return maxRequests
	}
	if rec.count >= maxRequests {
		return 0
	}
	return maxRequests - rec.count
}

// ResetAt returns the active window's reset time. The second return value is
// false when no active window exists for the key.
func (l *Limiter) ResetAt(identity, action string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.windows[key(identity, action)]
	if !ok || l.now().After(rec.resetAt) {
		return time.Time{}, false
	}
	return rec.resetAt, true
}

// RetryAfter returns how long the identity must wait before the action's
// window resets. Zero means the caller may retry immediately.
func (l *Limiter) RetryAfter(identity, action string) time.Duration {
	resetAt, ok := l.ResetAt(identity, action)
	if !ok {
		return 0
	}
	d := resetAt.Sub(l.now())
	if d < 0 {
		return 0
	}
	return d
}

// purgeLocked drops expired windows to bound memory growth. Called with the
// lock held on every Allow; the map stays small on a low-traffic site.
func (l *Limiter) purgeLocked(now time.Time) {
	for k, rec := range l.windows {
		if now.After(rec.resetAt) {
			delete(l.windows, k)
		}
	}
}
