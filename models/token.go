package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/serr"
)

// TokenInfo holds the display-only facts carried in a session token.
// The client never verifies tokens (it has no signing key); the backend
// remains the sole authority and expiry is still discovered reactively
// when a request is refused.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// ParseTokenInfo reads the subject and expiry claims of a JWT without
// verifying its signature. Opaque (non-JWT) tokens return an error and
// callers should simply omit the "signed in as" display.
func ParseTokenInfo(token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, serr.New("empty token")
	}

	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return TokenInfo{}, serr.Wrap(err, "failed to parse token claims")
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Expired reports whether the exp claim lies in the past at the given time.
// Informational only: requests are still sent and the backend decides.
func (ti TokenInfo) Expired(now time.Time) bool {
	return !ti.ExpiresAt.IsZero() && now.After(ti.ExpiresAt)
}
