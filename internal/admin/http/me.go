package http

import (
	"errors"
	"net/http"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// MeHandler serves GET /v1/auth/me.
type MeHandler struct {
	UserService *service.UserService
}

type ProfileResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ServeHTTP godoc
//
//	@Summary		Current User Profile
//	@Description	Returns the account behind the presented access token.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ProfileResponse	"id, email, name, role"
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	u, err := h.UserService.GetProfile(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account removed after the token was issued.
			httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		slogx.FromContext(ctx).Error("profile lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "SERVER_ERROR", "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	})
}
