package store

import (
	"context"
	"errors"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this; it exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Campaigns() Campaigns
	Notifications() Notifications
	Banners() Banners

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by canonical id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login; email is matched exactly as
	// stored (lowercased at the trust boundary).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the assigned id.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Campaigns interface {
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error)
	UpdateCampaignStatus(ctx context.Context, id int64, status string) error
}

type Notifications interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	CreateNotification(ctx context.Context, n domain.Notification) (int64, error)

	// DeleteExpiredNotifications removes announcements past their expiry;
	// called by housekeeping.
	DeleteExpiredNotifications(ctx context.Context, now time.Time) error
}

type Banners interface {
	ListBanners(ctx context.Context) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, b domain.Banner) (int64, error)
}
