package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (r *Repository) GetAllDepartments() ([]*domain.Department, error) {
	query := `
		SELECT id, name, created_at, version
		FROM departments
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		d := &domain.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.Version); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

func (r *Repository) CreateDepartment(d *domain.Department) error {
	query := `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, d.Name).Scan(&d.ID, &d.CreatedAt, &d.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateDepartment(d *domain.Department) error {
	query := `
		UPDATE departments
		SET name = $1, version = version + 1
		WHERE id = $2
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, d.Name, d.ID).Scan(&d.CreatedAt, &d.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// DeleteDepartment 删除部门前先把成员的部门清空，两步放在同一个事务中
func (r *Repository) DeleteDepartment(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET department_id = NULL, version = version + 1 WHERE department_id = $1
	`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		DELETE FROM departments WHERE id = $1
	`, id)
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

	return tx.Commit()
}
