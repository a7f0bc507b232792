package http

import (
	"net/http"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// BannersHandler serves GET /v1/banners.
type BannersHandler struct {
	ContentService *service.ContentService
}

type BannerListResponse struct {
	Banners []domain.Banner `json:"banners"`
}

// ServeHTTP godoc
//
//	@Summary		List Banners
//	@Description	Lists banners ordered by display position.
//	@Tags			Content
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	BannerListResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/v1/banners [get].
func (h *BannersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.ContentService.ListBanners(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("banner list failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "SERVER_ERROR", "internal error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, BannerListResponse{Banners: list})
}
