package domain

import "time"

// TokenPair is what a successful login or refresh returns: a short-lived
// access token and a long-lived refresh token, both signed, both bound to
// the same subject, with independent expiries.
type TokenPair struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    time.Duration `json:"-"`
}
