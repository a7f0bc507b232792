package service

import (
	"context"
	"fmt"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
)

// ErrUnknownStatus rejects campaign status values outside the fixed set.
var ErrUnknownStatus = fmt.Errorf("service: unknown campaign status")

// ContentService serves the admin read models for campaigns, notifications
// and banners, and the moderation write path for campaign status.
type ContentService struct {
	Store store.Store
}

func (s *ContentService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.Store.Campaigns().ListCampaigns(ctx)
}

// SetCampaignStatus moves a campaign through the moderation states.
func (s *ContentService) SetCampaignStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case domain.CampaignPending, domain.CampaignApproved, domain.CampaignRejected:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return s.Store.Campaigns().UpdateCampaignStatus(ctx, id, status)
}

func (s *ContentService) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	return s.Store.Notifications().ListNotifications(ctx)
}

func (s *ContentService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.Store.Banners().ListBanners(ctx)
}
