package auth

import (
	"sync"
	"time"
)

// attemptRecord tracks consecutive failed logins from one caller origin.
// A record whose last attempt is older than the lockout window is treated
// as absent.
type attemptRecord struct {
	count       int
	lastAttempt time.Time
}

// lockoutTracker holds failed-attempt state per caller origin. State lives
// in process memory only; a restart clears all lockouts. That is an accepted
// limitation of the deployment, not something this type tries to paper over.
type lockoutTracker struct {
	mu          sync.Mutex
	attempts    map[string]*attemptRecord
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func newLockoutTracker(maxAttempts int, window time.Duration, now func() time.Time) *lockoutTracker {
	return &lockoutTracker{
		attempts:    make(map[string]*attemptRecord),
		maxAttempts: maxAttempts,
		window:      window,
		now:         now,
	}
}

// locked reports whether the origin is currently locked out, along with how
// long the caller should wait. A zero duration means the login may proceed.
func (lt *lockoutTracker) locked(origin string) (bool, time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	rec, ok := lt.attempts[origin]
	if !ok {
		return false, 0
	}
	now := lt.now()
	if now.Sub(rec.lastAttempt) > lt.window {
		delete(lt.attempts, origin)
		return false, 0
	}
	if rec.count >= lt.maxAttempts {
		return true, rec.lastAttempt.Add(lt.window).Sub(now)
	}
	return false, 0
}

// recordFailure advances the failure count for the origin. A failure after
// the window elapsed starts a fresh record.
func (lt *lockoutTracker) recordFailure(origin string) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	now := lt.now()
	rec, ok := lt.attempts[origin]
	if !ok || now.Sub(rec.lastAttempt) > lt.window {
		lt.attempts[origin] = &attemptRecord{count: 1, lastAttempt: now}
		return
	}
	rec.count++
	rec.lastAttempt = now
}

// clear removes failed-attempt state on a successful login.
func (lt *lockoutTracker) clear(origin string) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	delete(lt.attempts, origin)
}

// remaining returns how many attempts the origin has left before lockout.
func (lt *lockoutTracker) remaining(origin string) int {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	rec, ok := lt.attempts[origin]
	if !ok || lt.now().Sub(rec.lastAttempt) > lt.window {
		return lt.maxAttempts
	}
	if rec.count >= lt.maxAttempts {
		return 0
	}
	return lt.maxAttempts - rec.count
}

// sweep drops stale records to bound memory growth.
func (lt *lockoutTracker) sweep() {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	now := lt.now()
	for origin, rec := range lt.attempts {
		if now.Sub(rec.lastAttempt) > lt.window {
			delete(lt.attempts, origin)
		}
	}
}
