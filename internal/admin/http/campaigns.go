package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// CampaignsHandler serves the campaign moderation endpoints.
type CampaignsHandler struct {
	ContentService *service.ContentService
}

type CampaignListResponse struct {
	Campaigns []domain.Campaign `json:"campaigns"`
}

type CampaignStatusRequest struct {
	Status string `json:"status"`
}

// HandleList godoc
//
//	@Summary		List Campaigns
//	@Description	Lists all campaigns for moderation, newest first.
//	@Tags			Content
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	CampaignListResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/v1/campaigns [get].
func (h *CampaignsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.ContentService.ListCampaigns(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("campaign list failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "SERVER_ERROR", "internal error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CampaignListResponse{Campaigns: list})
}

// HandleSetStatus godoc
//
//	@Summary		Set Campaign Status
//	@Description	Moves a campaign between PENDING, APPROVED and REJECTED.
//	@Tags			Content
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int						true	"Campaign id"
//	@Param			request	body	CampaignStatusRequest	true	"New status"
//	@Success		204		"status updated"
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/campaigns/{id}/status [patch].
func (h *CampaignsHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "campaign id must be a positive integer")
		return
	}

	var req CampaignStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		httpx.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	if err := h.ContentService.SetCampaignStatus(ctx, id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownStatus):
			httpx.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "unknown campaign status")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", "campaign not found")
		default:
			slogx.FromContext(ctx).Error("campaign status update failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "SERVER_ERROR", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
