package repository

import (
	"context"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (r *Repository) CreateHoliday(h *domain.Holiday) error {
	query := `
		INSERT INTO holidays (date, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, h.Date.UTC().Format("2006-01-02"), h.Name).Scan(&h.ID, &h.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllHolidays() ([]*domain.Holiday, error) {
	query := `
		SELECT id, date, name, created_at
		FROM holidays
		ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		h := &domain.Holiday{}
		dst := []any{&h.ID, &h.Date, &h.Name, &h.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

func (r *Repository) DeleteHoliday(id int64) error {
	query := `
		DELETE FROM holidays WHERE id = $1
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
