package sqlite

import (
	"context"
	"database/sql"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
)

type bannersRepo struct {
	db *sql.DB
}

func (r *bannersRepo) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, image_url, link_url, position, active, created_at, updated_at
		 FROM banners ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.Position, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bannersRepo) CreateBanner(ctx context.Context, b domain.Banner) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO banners (title, image_url, link_url, position, active) VALUES (?, ?, ?, ?, ?)`,
		b.Title, b.ImageURL, b.LinkURL, b.Position, b.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
