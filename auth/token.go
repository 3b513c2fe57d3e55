package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingKeyInfo is the HKDF domain-separation label for the session token
// signing key derived from the configured secret.
const signingKeyInfo = "folio/admin-session/v1"

// sessionClaims is the token payload: a fixed admin claim plus the standard
// issued-at and expiry timestamps. Claims are validated and reconstructed on
// verify rather than trusted as an arbitrary decoded object.
type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// mintToken signs a session token asserting the admin claim, valid from now
// until now + ttl.
func mintToken(key []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// parseToken verifies the signature and expiry of a presented token and
// returns its claims. Any malformed, tampered, or expired token produces an
// error; callers map all such errors to "not authenticated".
func parseToken(key []byte, tokenStr string, now func() time.Time) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	if !claims.Admin {
		return nil, errors.New("session token missing admin claim")
	}
	return claims, nil
}
