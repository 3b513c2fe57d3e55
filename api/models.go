package api

import "time"

// ErrorResponse is the envelope for every non-2xx body.
type ErrorResponse struct {
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remaining_attempts,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// HealthResponse reports service liveness and whether the admin surface
// is usable.
type HealthResponse struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
}

// LoginRequest carries the admin credential.
type LoginRequest struct {
	Password string `json:"password"`
}

// SuccessResponse acknowledges an operation with no other payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LoginResponse confirms a minted session.
type LoginResponse struct {
	Success   bool      `json:"success"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyResponse reports whether the presented session token is valid.
type VerifyResponse struct {
	Authenticated bool       `json:"authenticated"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
}

// StatusUpdateRequest carries a moderation state change for a
// connection, review, or feedback record.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// SubmissionResponse acknowledges an accepted visitor submission.
type SubmissionResponse struct {
	ID string `json:"id"`
}
