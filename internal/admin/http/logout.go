package http

import (
	"encoding/json"
	"net/http"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// LogoutHandler serves POST /v1/auth/logout. The route is chained behind
// RequirePrincipal, so the bearer token has already been validated.
type LogoutHandler struct {
	TokenService *service.TokenService
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the presented access token. A refresh token may be supplied in the body to revoke it in the same call; revoking one never implicitly revokes the other.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body	LogoutRequest	false	"Optional refresh token to revoke alongside"
//	@Success		204		"tokens revoked"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Body is optional; a missing or empty body means access token only.
	var req LogoutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if raw, ok := httpx.BearerToken(r); ok {
		if err := h.TokenService.RevokeToken(raw); err != nil {
			log.Warn("access token revoke failed", "err", err)
		}
	}

	if req.RefreshToken != "" {
		if err := h.TokenService.RevokeToken(req.RefreshToken); err != nil {
			// A garbage refresh token does not fail the logout; the access
			// token is already dead.
			log.Warn("refresh token revoke failed", "err", err)
		}
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
