package repository

import (
	"context"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (r *Repository) CreateNotification(n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, type)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, n.UserID, n.Message, n.Type).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetNotificationsByUser(userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += " AND is_read = false"
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		dst := []any{&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// 只允许本人把自己的通知标记为已读
func (r *Repository) MarkNotificationRead(id int64, userID int64) error {
	query := `
		UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repository) MarkAllNotificationsRead(userID int64) error {
	query := `
		UPDATE notifications SET is_read = true WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}

	return nil
}
