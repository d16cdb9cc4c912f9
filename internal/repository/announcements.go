package repository

import (
	"context"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (r *Repository) CreateAnnouncement(a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (title, body, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, a.Title, a.Body, a.CreatedBy).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllAnnouncements() ([]*domain.Announcement, error) {
	query := `
		SELECT id, title, body, created_by, created_at, version
		FROM announcements
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := make([]*domain.Announcement, 0)
	for rows.Next() {
		a := &domain.Announcement{}
		dst := []any{&a.ID, &a.Title, &a.Body, &a.CreatedBy, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *Repository) DeleteAnnouncement(id int64) error {
	query := `
		DELETE FROM announcements WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
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
