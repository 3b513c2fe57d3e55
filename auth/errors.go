package auth

import "errors"

var (
	// ErrMisconfigured indicates the admin credential or signing secret is
	// missing from the environment. This is a deployment bug, not a failed
	// login attempt, and must be surfaced to operators as such.
	ErrMisconfigured = errors.New("admin credential or signing secret not configured")
	// ErrInvalidCredential indicates the supplied credential did not match.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrRateLimited indicates the caller origin is locked out after
	// repeated failed attempts.
	ErrRateLimited = errors.New("too many failed attempts")
)
