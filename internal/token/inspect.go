package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims describes what the client can read out of a bearer token without
// verifying it. The token is an opaque credential as far as the protocol is
// concerned; when it happens to be a JWT, surfacing its subject and expiry
// makes `whoami` more useful. A token that is not a JWT yields ok=false,
// which is not an error.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
// Tokens without a readable expiry never report expired.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// Inspect parses the token as a JWT without signature verification.
// Verification is the backend's job; the client only reads display hints.
func Inspect(token string) (*Claims, bool) {
	parser := jwt.NewParser()
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, false
	}

	out := &Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, true
}
