package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmcleod/folio/auth"
)

// Login handles POST /admin/login.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	clientIP := a.extractClientIP(r)
	session, err := a.authority.Login(req.Password, clientIP)
	if err != nil {
		a.writeLoginFailure(w, r, clientIP, err)
		return
	}

	writeSessionCookie(w, r, session.Token, session.ExpiresAt)
	writeCSRFCookie(w, r)
	a.audit.log(AuditLoginSuccess, r, slog.String("client_ip", clientIP))
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, ExpiresAt: session.ExpiresAt})
}

func (a *API) writeLoginFailure(w http.ResponseWriter, r *http.Request, clientIP string, err error) {
	switch {
	case errors.Is(err, auth.ErrMisconfigured):
		a.audit.logFailure(AuditLoginFailure, r, "admin credentials not configured")
		writeError(w, http.StatusInternalServerError, "authentication unavailable")
	case errors.Is(err, auth.ErrRateLimited):
		retryAfter := a.authority.LockoutRemaining(clientIP)
		a.audit.logFailure(AuditLoginRateLimited, r, "origin locked out",
			slog.String("client_ip", clientIP))
		writeRateLimited(w, retryAfter)
	default:
		remaining := a.authority.RemainingAttempts(clientIP)
		a.audit.logFailure(AuditLoginFailure, r, "invalid credential",
			slog.String("client_ip", clientIP),
			slog.Int("remaining_attempts", remaining))
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:             "invalid credentials",
			RemainingAttempts: &remaining,
		})
	}
}

// Verify handles GET /admin/verify. It always answers 200; the body
// says whether the presented token is a live admin session.
func (a *API) Verify(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, VerifyResponse{Authenticated: false})
		return
	}
	result := a.authority.Verify(cookie.Value)
	if !result.Authenticated {
		writeJSON(w, http.StatusOK, VerifyResponse{Authenticated: false})
		return
	}
	issued := result.IssuedAt
	writeJSON(w, http.StatusOK, VerifyResponse{Authenticated: true, IssuedAt: &issued})
}

// Logout handles POST /admin/logout. Tokens are stateless, so logout
// only clears the browser's cookies.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		a.authority.Logout(cookie.Value)
	}
	clearSessionCookie(w, r)
	clearCSRFCookie(w, r)
	a.audit.log(AuditLogout, r)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
