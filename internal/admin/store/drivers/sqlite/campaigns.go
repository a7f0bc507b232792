package sqlite

import (
	"context"
	"database/sql"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
)

type campaignsRepo struct {
	db *sql.DB
}

func (r *campaignsRepo) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, status, owner_id, created_at, updated_at
		 FROM campaigns ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Title, &c.Status, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *campaignsRepo) CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO campaigns (title, status, owner_id) VALUES (?, ?, ?)`,
		c.Title, c.Status, c.OwnerID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *campaignsRepo) UpdateCampaignStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

var _ store.Campaigns = (*campaignsRepo)(nil)
