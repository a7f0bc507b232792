package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Authenticates an email (or numeric user id) and password pair and issues an access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse	"accessToken, refreshToken, email"
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required")
		return
	}

	u, pair, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		// Unexpected faults fail closed: the client sees the same envelope
		// as a bad password while the real cause goes to the log.
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Error("login failed on internal error", "err", err)
		}
		httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Email:        u.Email,
	})
}
