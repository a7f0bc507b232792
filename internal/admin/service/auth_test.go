package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := &service.AuthService{Store: st, Tokens: newTokenService(t, st)}
	u := seedUser(t, st, "admin@example.com", "correct horse", true)
	seedUser(t, st, "parked@example.com", "whatever", false)

	t.Run("by email", func(t *testing.T) {
		got, pair, err := auth.Login(ctx, "admin@example.com", "correct horse")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("email matching ignores case and padding", func(t *testing.T) {
		got, _, err := auth.Login(ctx, "  Admin@Example.COM ", "correct horse")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("by numeric id", func(t *testing.T) {
		got, _, err := auth.Login(ctx, strconv.FormatInt(u.ID, 10), "correct horse")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})
}

// Every failure mode must collapse to the same error so responses cannot
// be used to probe which accounts exist.
func TestLoginUniformFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := &service.AuthService{Store: st, Tokens: newTokenService(t, st)}
	seedUser(t, st, "admin@example.com", "correct horse", true)
	disabled := seedUser(t, st, "parked@example.com", "whatever", false)

	cases := map[string]struct {
		identifier string
		password   string
	}{
		"unknown email":      {"nobody@example.com", "correct horse"},
		"unknown id":         {"424242", "correct horse"},
		"wrong password":     {"admin@example.com", "incorrect horse"},
		"disabled account":   {"parked@example.com", "whatever"},
		"disabled by id":     {strconv.FormatInt(disabled.ID, 10), "whatever"},
		"garbage identifier": {"not-an-identifier", "correct horse"},
		"empty identifier":   {"", "correct horse"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := auth.Login(ctx, tc.identifier, tc.password)
			require.ErrorIs(t, err, service.ErrInvalidCredentials)
		})
	}
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &service.UserService{Store: st}

	require.NoError(t, users.EnsureAdmin(ctx, "root@example.com", "bootstrap-pw", "Root"))

	u, err := st.Users().GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.True(t, u.Active)

	t.Run("second boot is a no-op", func(t *testing.T) {
		require.NoError(t, users.EnsureAdmin(ctx, "other@example.com", "different", "Other"))
		_, err := st.Users().GetUserByEmail(ctx, "other@example.com")
		require.Error(t, err)
	})
}
