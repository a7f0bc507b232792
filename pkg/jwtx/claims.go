package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. Short access tokens limit the damage window
// of a leaked bearer token; the refresh token carries the session.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 1 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token use values carried in the "use" claim. Validation enforces the
// expected use so a refresh token can never authenticate a request.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// Claims are the fields embedded in our signed tokens. The subject is
// always the canonical numeric user id in decimal form, fixed at issuance.
type Claims struct {
	jwt.RegisteredClaims

	// TokenUse distinguishes access from refresh tokens ("use" claim).
	TokenUse string `json:"use,omitempty"`

	// Role is the account role for privileged sessions, access tokens only.
	Role string `json:"role,omitempty"`

	// Email is the login email at issuance time, informational.
	Email string `json:"email,omitempty"`
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(subject, role, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenUse: TokenUseAccess,
		Role:     role,
		Email:    email,
	}
}

// NewRefreshClaims builds claims for a long-lived refresh token. Refresh
// tokens carry no role; they can only be exchanged, never used directly.
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenUse: TokenUseRefresh,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim so two
// tokens issued in the same second never collide.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateUse checks that the token was issued for the expected purpose.
func (c *Claims) ValidateUse(expected string) error {
	if c.TokenUse != expected {
		return ErrTokenUse
	}
	return nil
}

// ValidateExpiryAt checks exp and nbf against the given instant. A token is
// expired once now >= exp; leeway widens both checks for clock skew.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateExpiry is ValidateExpiryAt against the current time with no leeway.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC(), 0)
}
