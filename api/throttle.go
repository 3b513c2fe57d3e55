package api

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"
)

// throttlePolicy names an action and the request budget its callers get
// within a fixed window.
type throttlePolicy struct {
	action      string
	maxRequests int
	window      time.Duration
}

// Submission and admin budgets. Visitor submission endpoints are tight
// because each accepted request persists a record; the admin budget is
// looser since every request there is already authenticated.
var (
	contactPolicy     = throttlePolicy{action: "contact", maxRequests: 3, window: 5 * time.Minute}
	reviewPolicy      = throttlePolicy{action: "review", maxRequests: 5, window: 5 * time.Minute}
	feedbackPolicy    = throttlePolicy{action: "feedback", maxRequests: 5, window: 5 * time.Minute}
	adminActionPolicy = throttlePolicy{action: "admin_action", maxRequests: 20, window: time.Minute}
	generalPolicy     = throttlePolicy{action: "general", maxRequests: 50, window: time.Minute}
)

// throttle applies a policy for the request's client IP. It returns
// false after writing a 429 when the caller's budget is exhausted.
func (a *API) throttle(w http.ResponseWriter, r *http.Request, policy throttlePolicy) bool {
	clientIP := a.extractClientIP(r)
	if a.limiter.Allow(clientIP, policy.action, policy.maxRequests, policy.window) {
		return true
	}
	retryAfter := a.limiter.RetryAfter(clientIP, policy.action)
	a.audit.logFailure(AuditThrottled, r, "request budget exhausted")
	writeRateLimited(w, retryAfter)
	return false
}

// generalThrottleMiddleware applies the coarse per-IP budget covering
// the whole API surface. Endpoint-specific policies stack on top.
func (a *API) generalThrottleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.throttle(w, r, generalPolicy) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminThrottleMiddleware bounds the rate of authenticated admin
// mutations. Reads pass through untouched.
func (a *API) adminThrottleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !a.throttle(w, r, adminActionPolicy) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeRateLimited sends a 429 Too Many Requests response.
func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(retryAfter.Seconds())
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
		Error:             "too many requests; try again later",
		RetryAfterSeconds: secs,
	})
}

// extractClientIP returns the client IP for rate limiting. It delegates
// to extractClientIPWithProxies using the API's configured trusted
// proxies.
func (a *API) extractClientIP(r *http.Request) string {
	return extractClientIPWithProxies(r, a.trustedProxies)
}

// extractClientIPWithProxies returns the best-effort client IP address.
//
// Proxy headers (X-Forwarded-For, Forwarded, X-Real-IP) are only honored
// if trustedProxies is non-empty AND the request's RemoteAddr falls within
// one of the trusted CIDR ranges. This prevents untrusted clients from
// spoofing their source IP via headers.
//
// When trustedProxies is nil or empty (the default), proxy headers are
// never consulted and RemoteAddr is always returned. To trust proxy
// headers, the operator must explicitly configure --trusted-proxies.
//
// Priority when proxy headers are trusted:
// 1. First valid entry in X-Forwarded-For
// 2. First valid "for=" value in Forwarded
// 3. X-Real-IP
// 4. RemoteAddr
func extractClientIPWithProxies(r *http.Request, trustedProxies []netip.Prefix) string {
	remoteIP, _ := parseIPCandidate(r.RemoteAddr)

	proxyTrusted := false
	if len(trustedProxies) > 0 && remoteIP != "" {
		if addr, err := netip.ParseAddr(remoteIP); err == nil {
			for _, prefix := range trustedProxies {
				if prefix.Contains(addr) {
					proxyTrusted = true
					break
				}
			}
		}
	}

	if proxyTrusted {
		if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
			for _, part := range strings.Split(xff, ",") {
				if ip, ok := parseIPCandidate(part); ok {
					return ip
				}
			}
		}

		if fwd := strings.TrimSpace(r.Header.Get("Forwarded")); fwd != "" {
			for _, elem := range strings.Split(fwd, ",") {
				for _, param := range strings.Split(elem, ";") {
					param = strings.TrimSpace(param)
					if !strings.HasPrefix(strings.ToLower(param), "for=") {
						continue
					}
					raw := strings.TrimSpace(param[4:])
					if ip, ok := parseIPCandidate(raw); ok {
						return ip
					}
				}
			}
		}

		if xrip := strings.TrimSpace(r.Header.Get("X-Real-IP")); xrip != "" {
			if ip, ok := parseIPCandidate(xrip); ok {
				return ip
			}
		}
	}

	if remoteIP != "" {
		return remoteIP
	}
	return ""
}

func parseIPCandidate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"")
	if s == "" {
		return "", false
	}

	// RFC 7239 quoted IPv6 may appear as [::1]:1234.
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}

	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	// Drop zone if any (e.g. fe80::1%eth0).
	if i := strings.IndexByte(s, '%'); i >= 0 {
		s = s[:i]
	}

	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.String(), true
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String(), true
	}
	return "", false
}
