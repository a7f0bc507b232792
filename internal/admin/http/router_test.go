package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	adminhttp "github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/http"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store/drivers/sqlite"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/cryptox"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/jwtx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/revokex"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	router *adminhttp.Router
	store  *sqlite.Store
	codec  *jwtx.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(testKey, 0)
	require.NoError(t, err)

	tokens := &service.TokenService{
		Codec:       codec,
		Revocations: revokex.New(),
		Store:       st,
		Issuer:      "kok-admin",
		AccessTTL:   time.Hour,
		RefreshTTL:  7 * 24 * time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	r := adminhttp.NewRouter("test", st, logger)
	r.TokenService = tokens
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	r.UserService = &service.UserService{Store: st}
	r.ContentService = &service.ContentService{Store: st}
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, codec: codec}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func (e *testEnv) seedAccount(t *testing.T, email, password, role string) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	id, err := e.store.Users().CreateUser(context.Background(), domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
	require.NoError(t, err)
	u, err := e.store.Users().GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, email, password string) adminhttp.LoginResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/auth/login", "", adminhttp.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out adminhttp.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLoginLogoutFlow(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedAccount(t, "admin@example.com", "correct horse", domain.RoleAdmin)

	out := env.login(t, "admin@example.com", "correct horse")
	require.Equal(t, "admin@example.com", out.Email)
	require.NotEqual(t, out.AccessToken, out.RefreshToken)

	t.Run("both tokens carry the canonical subject", func(t *testing.T) {
		access, err := env.codec.Decode(out.AccessToken)
		require.NoError(t, err)
		refresh, err := env.codec.Decode(out.RefreshToken)
		require.NoError(t, err)
		want := strconv.FormatInt(u.ID, 10)
		require.Equal(t, want, access.Subject)
		require.Equal(t, want, refresh.Subject)
	})

	bearer := "Bearer " + out.AccessToken

	rec := env.do(t, http.MethodGet, "/v1/auth/me", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile adminhttp.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, u.ID, profile.ID)

	rec = env.do(t, http.MethodPost, "/v1/auth/logout", bearer, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("revoked access token no longer authenticates", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/auth/me", bearer, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sibling refresh token survives access revocation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/refresh", "", adminhttp.RefreshRequest{RefreshToken: out.RefreshToken})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

// Unknown account and wrong password must produce byte-identical failure
// bodies so responses cannot be used to enumerate accounts.
func TestLoginFailureIsUniform(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "correct horse", domain.RoleAdmin)

	wrongPw := env.do(t, http.MethodPost, "/v1/auth/login", "", adminhttp.LoginRequest{Email: "admin@example.com", Password: "nope"})
	unknown := env.do(t, http.MethodPost, "/v1/auth/login", "", adminhttp.LoginRequest{Email: "nobody@example.com", Password: "nope"})

	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
	require.JSONEq(t,
		`{"success":false,"message":"invalid credentials","errorCode":"UNAUTHORIZED","status":401}`,
		wrongPw.Body.String())
}

func TestBasicSchemeIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "correct horse", domain.RoleAdmin)

	none := env.do(t, http.MethodGet, "/v1/auth/me", "", nil)
	basic := env.do(t, http.MethodGet, "/v1/auth/me", "Basic YWRtaW46aHVudGVyMg==", nil)

	require.Equal(t, http.StatusUnauthorized, none.Code)
	require.Equal(t, basic.Code, none.Code)
	require.JSONEq(t, none.Body.String(), basic.Body.String())
}

func TestRefreshRotationOverWire(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "correct horse", domain.RoleAdmin)
	out := env.login(t, "admin@example.com", "correct horse")

	first := env.do(t, http.MethodPost, "/v1/auth/refresh", "", adminhttp.RefreshRequest{RefreshToken: out.RefreshToken})
	require.Equal(t, http.StatusOK, first.Code)

	t.Run("replayed refresh token is rejected", func(t *testing.T) {
		replay := env.do(t, http.MethodPost, "/v1/auth/refresh", "", adminhttp.RefreshRequest{RefreshToken: out.RefreshToken})
		require.Equal(t, http.StatusUnauthorized, replay.Code)
	})
}

func TestAdminRoutesRequireRole(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.seedAccount(t, "admin@example.com", "correct horse", domain.RoleAdmin).ID
	env.seedAccount(t, "viewer@example.com", "just looking", domain.RoleUser)

	_, err := env.store.Campaigns().CreateCampaign(context.Background(), domain.Campaign{
		Title: "Launch", Status: domain.CampaignPending, OwnerID: ownerID,
	})
	require.NoError(t, err)

	admin := env.login(t, "admin@example.com", "correct horse")
	viewer := env.login(t, "viewer@example.com", "just looking")

	t.Run("admin can list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/campaigns", "Bearer "+admin.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out adminhttp.CampaignListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out.Campaigns, 1)
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/campaigns", "Bearer "+viewer.AccessToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated gets 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/campaigns", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin can moderate", func(t *testing.T) {
		list := env.do(t, http.MethodGet, "/v1/campaigns", "Bearer "+admin.AccessToken, nil)
		var out adminhttp.CampaignListResponse
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &out))

		path := fmt.Sprintf("/v1/campaigns/%d/status", out.Campaigns[0].ID)
		rec := env.do(t, http.MethodPatch, path, "Bearer "+admin.AccessToken,
			adminhttp.CampaignStatusRequest{Status: domain.CampaignApproved})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health adminhttp.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
}
