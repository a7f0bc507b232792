package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed reports a token whose structure cannot be parsed at all.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrSignatureMismatch reports a token whose signature does not verify
	// against the service key. Tampered and forged tokens land here.
	ErrSignatureMismatch = errors.New("jwtx: signature mismatch")

	// ErrExpired reports a structurally valid, correctly signed token that
	// is past its expiry.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrNotYetValid reports a token used before its nbf claim.
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	// ErrTokenUse reports a token presented for the wrong purpose, e.g. a
	// refresh token offered where an access token is required.
	ErrTokenUse = errors.New("jwtx: wrong token use")

	// ErrUnknown covers any other parse anomaly. Callers treat it the same
	// as a rejection; the detail is only for server-side logs.
	ErrUnknown = errors.New("jwtx: token rejected")
)

// Codec encodes and decodes HS256-signed claims with a single shared
// symmetric key. It holds no other state and is safe for concurrent use;
// rotating the key means constructing a new Codec, call sites are unchanged.
type Codec struct {
	key    []byte
	leeway time.Duration
}

// NewCodec builds a Codec around the shared signing key. Leeway widens the
// expiry check to tolerate clock skew; zero means exact expiry.
func NewCodec(key []byte, leeway time.Duration) (*Codec, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty signing key")
	}
	if leeway < 0 {
		return nil, errors.New("jwtx: negative leeway")
	}
	return &Codec{key: key, leeway: leeway}, nil
}

// Encode signs the claims and returns the compact token string. It never
// fails for well-formed claims; an error here means the signing key itself
// is unusable.
func (c *Codec) Encode(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.key)
}

// Decode parses and verifies a token string. Structure and signature are
// checked strictly before expiry, so a corrupted token is never reported as
// merely expired. Decode performs no I/O.
func (c *Codec) Decode(tokenStr string) (Claims, error) {
	claims, err := c.parseAndVerify(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryAt(time.Now().UTC(), c.leeway); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// DecodeIgnoringExpiry is Decode without the expiry check. It still rejects
// malformed tokens and bad signatures. Used by flows that must read claims
// off an expired token, e.g. refresh rotation audits.
func (c *Codec) DecodeIgnoringExpiry(tokenStr string) (Claims, error) {
	return c.parseAndVerify(tokenStr)
}

// parseAndVerify checks structure and signature only. Claim validation
// (exp/nbf) is deliberately disabled here so the caller controls ordering.
func (c *Codec) parseAndVerify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return Claims{}, ErrSignatureMismatch
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrUnknown, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrUnknown
	}
	return *claims, nil
}
