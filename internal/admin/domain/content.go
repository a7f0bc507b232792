package domain

import "time"

// Campaign statuses as stored.
const (
	CampaignPending  = "PENDING"
	CampaignApproved = "APPROVED"
	CampaignRejected = "REJECTED"
)

// Campaign is an advertiser campaign row managed through the admin surface.
type Campaign struct {
	ID        int64
	Title     string
	Status    string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Notification is a platform announcement shown to users.
type Notification struct {
	ID        int64
	Title     string
	Body      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Banner is a promotional banner slot.
type Banner struct {
	ID        int64
	Title     string
	ImageURL  string
	LinkURL   string
	Position  int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
