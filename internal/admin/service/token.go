package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/cryptox"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/jwtx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/revokex"
)

var (
	// ErrRevoked reports a structurally valid, unexpired, correctly signed
	// token that the user has explicitly invalidated.
	ErrRevoked = errors.New("service: token revoked")

	// ErrInvalidRefresh covers every refresh-exchange failure; the wire
	// never learns which check rejected the token.
	ErrInvalidRefresh = errors.New("service: invalid refresh token")
)

// TokenService issues and validates the service's bearer tokens. A single
// instance is shared across all concurrent requests; every method is a pure
// function of its inputs plus the revocation list snapshot.
type TokenService struct {
	Codec       *jwtx.Codec
	Revocations *revokex.Store
	Store       store.Store
	Issuer      string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// Issue builds an access/refresh pair for the user. Both tokens carry the
// canonical numeric id as subject and have independent expiries. Issue has
// no side effects beyond signing; it never touches the revocation list.
func (s *TokenService) Issue(u domain.User) (domain.TokenPair, error) {
	now := time.Now().UTC()
	sub := strconv.FormatInt(u.ID, 10)

	access, err := s.Codec.Encode(jwtx.NewAccessClaims(sub, u.Role, u.Email, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := s.Codec.Encode(jwtx.NewRefreshClaims(sub, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Validate checks an access token. Failure kinds surface in strict
// priority order: Malformed/SignatureMismatch from the codec, then
// Expired, then, only for tokens that passed everything else, Revoked.
// A forged token is therefore never reported as merely revoked, which
// would leak whether its identity exists in the revocation list.
func (s *TokenService) Validate(tokenStr string) (jwtx.Claims, error) {
	claims, err := s.Codec.Decode(tokenStr)
	if err != nil {
		return jwtx.Claims{}, err
	}
	if err := claims.ValidateUse(jwtx.TokenUseAccess); err != nil {
		return jwtx.Claims{}, err
	}
	if s.Revocations.IsRevoked(cryptox.FingerprintToken(tokenStr)) {
		return jwtx.Claims{}, ErrRevoked
	}
	return claims, nil
}

// ValidateIgnoringExpiry is Validate without the expiry check. Signature
// and structure are still enforced, as is revocation. Used by flows that
// must read claims off an expired token.
func (s *TokenService) ValidateIgnoringExpiry(tokenStr string) (jwtx.Claims, error) {
	claims, err := s.Codec.DecodeIgnoringExpiry(tokenStr)
	if err != nil {
		return jwtx.Claims{}, err
	}
	if s.Revocations.IsRevoked(cryptox.FingerprintToken(tokenStr)) {
		return jwtx.Claims{}, ErrRevoked
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token is revoked in the same step (rotation), so a replayed exchange
// fails. Revoking an access token never touches its sibling refresh token;
// the two paths are independent.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Codec.Decode(refreshToken)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}
	if err := claims.ValidateUse(jwtx.TokenUseRefresh); err != nil {
		return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}

	fp := cryptox.FingerprintToken(refreshToken)
	if s.Revocations.IsRevoked(fp) {
		return domain.TokenPair{}, fmt.Errorf("%w: already rotated or logged out", ErrInvalidRefresh)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("%w: non-numeric subject", ErrInvalidRefresh)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, fmt.Errorf("%w: unknown subject", ErrInvalidRefresh)
		}
		return domain.TokenPair{}, err
	}
	if !u.Active {
		return domain.TokenPair{}, fmt.Errorf("%w: account disabled", ErrInvalidRefresh)
	}

	pair, err := s.Issue(u)
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Revocations.Revoke(fp, claims.ExpiresAt.Time)
	return pair, nil
}

// RevokeToken invalidates a token until its own expiry. The token must
// still carry a valid signature; there is no point blacklisting strings
// that could never authenticate. Expired tokens are accepted and revoked
// as a no-op, so logout with a just-expired access token still succeeds.
func (s *TokenService) RevokeToken(tokenStr string) error {
	claims, err := s.Codec.DecodeIgnoringExpiry(tokenStr)
	if err != nil {
		return err
	}
	s.Revocations.Revoke(cryptox.FingerprintToken(tokenStr), claims.ExpiresAt.Time)
	return nil
}
