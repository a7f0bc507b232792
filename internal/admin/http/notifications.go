package http

import (
	"net/http"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"
)

// NotificationsHandler serves GET /v1/notifications.
type NotificationsHandler struct {
	ContentService *service.ContentService
}

type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// ServeHTTP godoc
//
//	@Summary		List Notifications
//	@Description	Lists notifications that have not yet expired, newest first.
//	@Tags			Content
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	NotificationListResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/v1/notifications [get].
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.ContentService.ListNotifications(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("notification list failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "SERVER_ERROR", "internal error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, NotificationListResponse{Notifications: list})
}
