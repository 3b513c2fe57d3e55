package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually-advanced time source for window expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllowUpToMaxThenDeny(t *testing.T) {
	l := New()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("1.2.3.4", "contact_form", 5, time.Minute), "request %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4", "contact_form", 5, time.Minute), "request over the max should be denied")
}

func TestDenyDoesNotMutateCount(t *testing.T) {
	l := New()

	require.True(t, l.Allow("ip", "act", 1, time.Minute))
	require.False(t, l.Allow("ip", "act", 1, time.Minute))
	// A denied call must not consume budget; remaining stays at zero, not
	// negative, and the window reset time is unchanged.
	assert.Equal(t, 0, l.Remaining("ip", "act", 1))
}

func TestWindowReset(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))

	require.True(t, l.Allow("ip", "act", 2, time.Minute))
	require.True(t, l.Allow("ip", "act", 2, time.Minute))
	require.False(t, l.Allow("ip", "act", 2, time.Minute))

	resetAt, ok := l.ResetAt("ip", "act")
	require.True(t, ok)
	assert.Equal(t, clock.Now().Add(time.Minute), resetAt)

	clock.Advance(time.Minute + time.Second)

	assert.True(t, l.Allow("ip", "act", 2, time.Minute), "first call after reset should be allowed")
	assert.Equal(t, 1, l.Remaining("ip", "act", 2), "counter should restart at 1 after reset")
}

func TestRemainingWithoutRecord(t *testing.T) {
	l := New()
	assert.Equal(t, 10, l.Remaining("nobody", "act", 10))
}

func TestResetAtWithoutRecord(t *testing.T) {
	l := New()
	_, ok := l.ResetAt("nobody", "act")
	assert.False(t, ok)
	assert.Equal(t, time.Duration(0), l.RetryAfter("nobody", "act"))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()

	require.True(t, l.Allow("a", "act", 1, time.Minute))
	require.False(t, l.Allow("a", "act", 1, time.Minute))

	assert.True(t, l.Allow("b", "act", 1, time.Minute), "another identity should have its own budget")
	assert.True(t, l.Allow("a", "other", 1, time.Minute), "another action should have its own budget")
}

func TestInvalidInputDenied(t *testing.T) {
	l := New()

	assert.False(t, l.Allow("", "act", 1, time.Minute))
	assert.False(t, l.Allow("ip", "", 1, time.Minute))
	assert.False(t, l.Allow("ip", "act", 0, time.Minute))
	assert.False(t, l.Allow("ip", "act", 1, 0))
}

func TestExpiredWindowsArePurged(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))

	for i := 0; i < 10; i++ {
		require.True(t, l.Allow("ip", "act", 100, time.Minute))
	}
	clock.Advance(2 * time.Minute)

	// Any Allow call purges expired windows.
	require.True(t, l.Allow("other", "act", 1, time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.windows, 1, "expired window should have been purged")
}

func TestConcurrentAllowNeverOverAdmits(t *testing.T) {
	const max = 20
	const extra = 5

	l := New()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < max+extra; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("ip", "act", max, time.Minute) {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(max), allowed.Load(), "exactly max requests should be admitted")
}
