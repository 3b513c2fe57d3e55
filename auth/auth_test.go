package auth

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func newTestAuthority(t *testing.T, clock *fakeClock) *Authority {
	t.Helper()
	cfg := Config{
		AdminCredential: "correct horse battery staple",
		SigningSecret:   "test-signing-secret",
		MaxAttempts:     3,
		LockoutWindow:   15 * time.Minute,
	}
	if clock != nil {
		cfg.Now = clock.Now
	}
	a := New(cfg)
	require.True(t, a.Configured())
	return a
}

func TestLoginVerifyRoundTrip(t *testing.T) {
	a := newTestAuthority(t, nil)

	session, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, session.IssuedAt.Add(time.Hour), session.ExpiresAt)

	result := a.Verify(session.Token)
	assert.True(t, result.Authenticated)
	assert.Equal(t, session.IssuedAt.Unix(), result.IssuedAt.Unix())
}

func TestLoginWrongCredential(t *testing.T) {
	a := newTestAuthority(t, nil)

	_, err := a.Login("wrong", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.Equal(t, 2, a.RemainingAttempts("1.2.3.4"))
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	a := newTestAuthority(t, nil)

	for i := 0; i < 3; i++ {
		_, err := a.Login("wrong", "1.2.3.4")
		require.ErrorIs(t, err, ErrInvalidCredential)
	}

	// Even the correct credential is rejected while locked.
	_, err := a.Login("correct horse battery staple", "1.2.3.4")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 0, a.RemainingAttempts("1.2.3.4"))
	assert.Greater(t, a.LockoutRemaining("1.2.3.4"), time.Duration(0))
}

func TestLockoutIsPerOrigin(t *testing.T) {
	a := newTestAuthority(t, nil)

	for i := 0; i < 3; i++ {
		_, _ = a.Login("wrong", "1.2.3.4")
	}
	_, err := a.Login("correct horse battery staple", "5.6.7.8")
	assert.NoError(t, err, "another origin should be unaffected by a lockout")
}

func TestLockoutExpiresAfterWindow(t *testing.T) {
	clock := newFakeClock()
	a := newTestAuthority(t, clock)

	for i := 0; i < 3; i++ {
		_, _ = a.Login("wrong", "1.2.3.4")
	}
	_, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.ErrorIs(t, err, ErrRateLimited)

	clock.Advance(15*time.Minute + time.Second)

	session, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, a.Verify(session.Token).Authenticated)
	assert.Equal(t, 3, a.RemainingAttempts("1.2.3.4"), "failure record should be cleared")
}

func TestSuccessClearsFailureRecord(t *testing.T) {
	a := newTestAuthority(t, nil)

	_, _ = a.Login("wrong", "1.2.3.4")
	_, _ = a.Login("wrong", "1.2.3.4")
	require.Equal(t, 1, a.RemainingAttempts("1.2.3.4"))

	_, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 3, a.RemainingAttempts("1.2.3.4"))
}

func TestTokenExpiry(t *testing.T) {
	clock := newFakeClock()
	a := newTestAuthority(t, clock)

	session, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.NoError(t, err)
	require.True(t, a.Verify(session.Token).Authenticated)

	clock.Advance(time.Hour + time.Second)

	assert.False(t, a.Verify(session.Token).Authenticated,
		"token past its expiry must not verify even with a valid signature")
}

func TestTamperedTokenRejected(t *testing.T) {
	a := newTestAuthority(t, nil)

	session, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.NoError(t, err)

	// Flip one byte at every position; no mutation may verify.
	token := session.Token
	for i := 0; i < len(token); i += 7 {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		assert.False(t, a.Verify(string(mutated)).Authenticated,
			"mutation at byte %d should not verify", i)
	}
}

func TestVerifyMalformedTokens(t *testing.T) {
	a := newTestAuthority(t, nil)

	for _, tok := range []string{"", "not-a-token", "a.b.c", strings.Repeat("x", 4096)} {
		assert.False(t, a.Verify(tok).Authenticated, "token %q should not verify", tok)
	}
}

func TestMisconfigurationPrecedence(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"no credential", Config{SigningSecret: "secret"}},
		{"no signing secret", Config{AdminCredential: "password"}},
		{"neither", Config{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := New(tc.cfg)
			assert.False(t, a.Configured())

			// Misconfiguration wins regardless of credential correctness.
			_, err := a.Login("password", "1.2.3.4")
			assert.ErrorIs(t, err, ErrMisconfigured)

			assert.False(t, a.Verify("anything").Authenticated)
		})
	}
}

func TestNormalizedCredentialComparison(t *testing.T) {
	a := New(Config{
		// U+00E9, precomposed.
		AdminCredential: "café",
		SigningSecret:   "secret",
	})

	// Decomposed form of the same string must authenticate.
	_, err := a.Login("café", "1.2.3.4")
	assert.NoError(t, err)
}

func TestTokensAreNotCrossAuthorityValid(t *testing.T) {
	a := newTestAuthority(t, nil)
	b := New(Config{
		AdminCredential: "correct horse battery staple",
		SigningSecret:   "a-different-signing-secret",
	})

	session, err := a.Login("correct horse battery staple", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, b.Verify(session.Token).Authenticated,
		"token signed with one secret must not verify under another")
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	a := newTestAuthority(t, nil)
	a.Logout("")
	a.Logout("garbage")
}
