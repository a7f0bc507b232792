package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
)

type notificationsRepo struct {
	db *sql.DB
}

func (r *notificationsRepo) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, expires_at, created_at
		 FROM notifications ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.ExpiresAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (title, body, expires_at) VALUES (?, ?, ?)`,
		n.Title, n.Body, n.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *notificationsRepo) DeleteExpiredNotifications(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE expires_at <= ?`, now)
	return err
}
