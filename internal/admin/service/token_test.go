package service_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store/drivers/sqlite"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/cryptox"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/jwtx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/revokex"
	"github.com/stretchr/testify/require"
)

const testIssuer = "kok-admin"

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTokenService(t *testing.T, st *sqlite.Store) *service.TokenService {
	t.Helper()
	codec, err := jwtx.NewCodec(testKey, 0)
	require.NoError(t, err)
	return &service.TokenService{
		Codec:       codec,
		Revocations: revokex.New(),
		Store:       st,
		Issuer:      testIssuer,
		AccessTTL:   time.Hour,
		RefreshTTL:  7 * 24 * time.Hour,
	}
}

func seedUser(t *testing.T, st *sqlite.Store, email, password string, active bool) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	id, err := st.Users().CreateUser(context.Background(), domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       active,
	})
	require.NoError(t, err)
	u, err := st.Users().GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

// Corrupts the signature segment without touching header or payload.
func tamperSignature(t *testing.T, token string) string {
	t.Helper()
	i := strings.LastIndexByte(token, '.')
	require.Positive(t, i)
	sig := []byte(token[i+1:])
	if sig[len(sig)-1] == 'A' {
		sig[len(sig)-1] = 'B'
	} else {
		sig[len(sig)-1] = 'A'
	}
	return token[:i+1] + string(sig)
}

func TestIssueAndValidate(t *testing.T) {
	st := newTestStore(t)
	svc := newTokenService(t, st)
	u := seedUser(t, st, "admin@example.com", "s3cret!", true)

	pair, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.Validate(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, strconv.FormatInt(u.ID, 10), claims.Subject)
	require.Equal(t, domain.RoleAdmin, claims.Role)
	require.Equal(t, u.Email, claims.Email)

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := svc.Validate(pair.RefreshToken)
		require.ErrorIs(t, err, jwtx.ErrTokenUse)
	})
}

func TestValidateErrorPriority(t *testing.T) {
	st := newTestStore(t)
	svc := newTokenService(t, st)
	u := seedUser(t, st, "admin@example.com", "s3cret!", true)

	pair, err := svc.Issue(u)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeToken(pair.AccessToken))

	t.Run("revoked token is rejected", func(t *testing.T) {
		_, err := svc.Validate(pair.AccessToken)
		require.ErrorIs(t, err, service.ErrRevoked)
	})

	t.Run("forged signature outranks revocation", func(t *testing.T) {
		_, err := svc.Validate(tamperSignature(t, pair.AccessToken))
		require.ErrorIs(t, err, jwtx.ErrSignatureMismatch)
		require.NotErrorIs(t, err, service.ErrRevoked)
	})

	t.Run("expiry outranks revocation", func(t *testing.T) {
		short := newTokenService(t, st)
		short.AccessTTL = -time.Minute
		expired, err := short.Issue(u)
		require.NoError(t, err)
		require.NoError(t, short.RevokeToken(expired.AccessToken))

		_, err = short.Validate(expired.AccessToken)
		require.ErrorIs(t, err, jwtx.ErrExpired)
		require.NotErrorIs(t, err, service.ErrRevoked)
	})
}

func TestValidateIgnoringExpiry(t *testing.T) {
	st := newTestStore(t)
	svc := newTokenService(t, st)
	svc.AccessTTL = -time.Minute
	u := seedUser(t, st, "admin@example.com", "s3cret!", true)

	pair, err := svc.Issue(u)
	require.NoError(t, err)

	_, err = svc.Validate(pair.AccessToken)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	claims, err := svc.ValidateIgnoringExpiry(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, strconv.FormatInt(u.ID, 10), claims.Subject)

	t.Run("signature still enforced", func(t *testing.T) {
		_, err := svc.ValidateIgnoringExpiry(tamperSignature(t, pair.AccessToken))
		require.ErrorIs(t, err, jwtx.ErrSignatureMismatch)
	})

	t.Run("revocation still enforced", func(t *testing.T) {
		require.NoError(t, svc.RevokeToken(pair.AccessToken))
		_, err := svc.ValidateIgnoringExpiry(pair.AccessToken)
		require.ErrorIs(t, err, service.ErrRevoked)
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTokenService(t, st)
	u := seedUser(t, st, "admin@example.com", "s3cret!", true)

	pair, err := svc.Issue(u)
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = svc.Validate(next.AccessToken)
	require.NoError(t, err)

	t.Run("old refresh token is burned", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("rotated refresh token still works", func(t *testing.T) {
		_, err := svc.Refresh(ctx, next.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, next.AccessToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})
}

func TestRevokeAccessLeavesRefreshAlive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTokenService(t, st)
	u := seedUser(t, st, "admin@example.com", "s3cret!", true)

	pair, err := svc.Issue(u)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeToken(pair.AccessToken))

	_, err = svc.Validate(pair.AccessToken)
	require.ErrorIs(t, err, service.ErrRevoked)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsDisabledAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTokenService(t, st)
	u := seedUser(t, st, "gone@example.com", "s3cret!", false)

	pair, err := svc.Issue(u)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)
}
