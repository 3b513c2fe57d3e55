// Package auth implements the admin session authority: it validates the
// single shared admin credential, issues signed expiring session tokens, and
// verifies presented tokens on protected requests.
//
// Sessions are stateless. There is no server-side token store; validity is
// fully determined by the token's signature and embedded expiry. The only
// mutable state is the per-origin failed-attempt bookkeeping used for
// brute-force lockout.
package auth

import (
	"crypto/subtle"
	"time"

	"github.com/awnumar/memguard"

	"github.com/jmcleod/folio/internal/util"
)

const (
	// DefaultSessionDuration bounds how long an issued token is honored.
	// Tokens are not renewed in place; a new login mints a new token.
	DefaultSessionDuration = time.Hour
	// DefaultMaxAttempts is the number of consecutive failed logins from
	// one origin before lockout.
	DefaultMaxAttempts = 5
	// DefaultLockoutWindow is how long an origin stays locked out, and how
	// long failed-attempt records stay relevant.
	DefaultLockoutWindow = 15 * time.Minute
)

// Config carries the deployment secrets and tuning for an Authority. The
// two secrets come from the environment and must never appear in logs or
// responses.
type Config struct {
	// AdminCredential is the shared admin password. Required.
	AdminCredential string
	// SigningSecret seeds the session token signing key. Required.
	SigningSecret string
	// SessionDuration defaults to DefaultSessionDuration.
	SessionDuration time.Duration
	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int
	// LockoutWindow defaults to DefaultLockoutWindow.
	LockoutWindow time.Duration
	// Now overrides the time source for tests.
	Now func() time.Time
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// VerifyResult is the outcome of checking a presented token. IssuedAt is
// only meaningful when Authenticated is true.
type VerifyResult struct {
	Authenticated bool
	IssuedAt      time.Time
}

// Authority gates admin operations behind the shared credential. Both
// secrets are held in memguard enclaves (encrypted at rest in memory) and
// only opened for the duration of a comparison or signing operation.
type Authority struct {
	credential      *memguard.Enclave
	signingKey      *memguard.Enclave
	configured      bool
	sessionDuration time.Duration
	lockouts        *lockoutTracker
	now             func() time.Time
}

// New constructs an Authority from cfg. A missing credential or signing
// secret does not prevent construction: the Authority comes up in a
// misconfigured state in which every login fails with ErrMisconfigured and
// every verification fails closed. Surfacing the condition per-request,
// rather than refusing to start, keeps the public site serving while making
// the deployment bug unmissable.
func New(cfg Config) *Authority {
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = DefaultSessionDuration
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.LockoutWindow <= 0 {
		cfg.LockoutWindow = DefaultLockoutWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	a := &Authority{
		sessionDuration: cfg.SessionDuration,
		lockouts:        newLockoutTracker(cfg.MaxAttempts, cfg.LockoutWindow, cfg.Now),
		now:             cfg.Now,
	}
	if cfg.AdminCredential == "" || cfg.SigningSecret == "" {
		return a
	}

	key, err := util.HKDF([]byte(cfg.SigningSecret), nil, []byte(signingKeyInfo))
	if err != nil {
		return a
	}

	// NewEnclave wipes its input buffer; normalize first so login-time
	// comparisons see a canonical form.
	a.credential = memguard.NewEnclave([]byte(util.Normalize(cfg.AdminCredential)))
	a.signingKey = memguard.NewEnclave(key)
	a.configured = true
	return a
}

// Configured reports whether both secrets were supplied. Operators should
// check this at startup; requests arriving before they do still fail with
// the distinct misconfiguration error.
func (a *Authority) Configured() bool {
	return a.configured
}

// SessionDuration returns the lifetime of issued tokens.
func (a *Authority) SessionDuration() time.Duration {
	return a.sessionDuration
}

// Login validates the supplied credential for the given caller origin and,
// on success, mints a session token.
//
// Order of checks: misconfiguration is a precondition and wins over
// everything; then the lockout state is consulted before the credential is
// compared, so a locked-out caller learns nothing about credential
// correctness; only then is the credential compared in constant time.
func (a *Authority) Login(suppliedCredential, callerOrigin string) (*Session, error) {
	if !a.configured {
		return nil, ErrMisconfigured
	}

	if locked, _ := a.lockouts.locked(callerOrigin); locked {
		return nil, ErrRateLimited
	}

	cred, err := a.credential.Open()
	if err != nil {
		return nil, ErrMisconfigured
	}
	match := subtle.ConstantTimeCompare(cred.Bytes(), []byte(util.Normalize(suppliedCredential))) == 1
	cred.Destroy()

	if !match {
		a.lockouts.recordFailure(callerOrigin)
		return nil, ErrInvalidCredential
	}

	a.lockouts.clear(callerOrigin)

	key, err := a.signingKey.Open()
	if err != nil {
		return nil, ErrMisconfigured
	}
	defer key.Destroy()

	now := a.now()
	token, err := mintToken(key.Bytes(), now, a.sessionDuration)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(a.sessionDuration),
	}, nil
}

// Verify checks a presented token. Missing, malformed, tampered, and
// expired tokens all map to an unauthenticated result; none is an error,
// so token-validity internals never leak to callers.
func (a *Authority) Verify(presentedToken string) VerifyResult {
	if !a.configured || presentedToken == "" {
		return VerifyResult{}
	}

	key, err := a.signingKey.Open()
	if err != nil {
		return VerifyResult{}
	}
	defer key.Destroy()

	claims, err := parseToken(key.Bytes(), presentedToken, a.now)
	if err != nil {
		return VerifyResult{}
	}
	return VerifyResult{
		Authenticated: true,
		IssuedAt:      claims.IssuedAt.Time,
	}
}

// Logout always succeeds. Sessions are not server-tracked, so logging out
// is realized entirely by the caller discarding its stored credential.
func (a *Authority) Logout(presentedToken string) {
	_ = presentedToken
}

// RemainingAttempts returns how many login attempts the origin has left
// before lockout. Intended for UI messaging.
func (a *Authority) RemainingAttempts(callerOrigin string) int {
	return a.lockouts.remaining(callerOrigin)
}

// LockoutRemaining returns how long the origin must wait before logins are
// accepted again. Zero when the origin is not locked out.
func (a *Authority) LockoutRemaining(callerOrigin string) time.Duration {
	locked, retryAfter := a.lockouts.locked(callerOrigin)
	if !locked {
		return 0
	}
	return retryAfter
}
