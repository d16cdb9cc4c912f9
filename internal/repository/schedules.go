package repository

import (
	"context"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

const scheduleColumns = `id, user_id, date, shift_start, shift_end, day_type, created_at, version`

func scanSchedule(row interface{ Scan(dst ...any) error }, s *domain.Schedule) error {
	dst := []any{
		&s.ID,
		&s.UserID,
		&s.Date,
		&s.ShiftStart,
		&s.ShiftEnd,
		&s.DayType,
		&s.CreatedAt,
		&s.Version,
	}
	return row.Scan(dst...)
}

func (r *Repository) GetSchedulesByUser(userID int64, from time.Time, to time.Time) ([]*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		if err := scanSchedule(rows, s); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetTeamSchedules(managerID int64, from time.Time, to time.Time) ([]*domain.Schedule, error) {
	query := `
		SELECT s.id, s.user_id, s.date, s.shift_start, s.shift_end, s.day_type, s.created_at, s.version
		FROM schedules s
		JOIN users u ON s.user_id = u.id
		WHERE u.manager_id = $1 AND s.date >= $2 AND s.date <= $3
		ORDER BY s.date, u.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, managerID, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		if err := scanSchedule(rows, s); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// UpsertSchedule 以 (user_id, date) 为键写入排班，重复写入覆盖班次时间
func (r *Repository) UpsertSchedule(s *domain.Schedule) error {
	query := `
		INSERT INTO schedules (user_id, date, shift_start, shift_end, day_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			shift_start = EXCLUDED.shift_start,
			shift_end = EXCLUDED.shift_end,
			day_type = EXCLUDED.day_type,
			version = schedules.version + 1
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.UserID, s.Date.UTC().Format("2006-01-02"), s.ShiftStart, s.ShiftEnd, s.DayType}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}
