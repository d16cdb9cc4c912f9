package repository

import (
	"context"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

// GetAttendanceSummary 按人统计一段时间内的出勤情况。
// managerID 不为空时只统计该主管的直属团队，admin 传空统计所有人。
func (r *Repository) GetAttendanceSummary(from time.Time, to time.Time, managerID *int64) ([]*domain.AttendanceSummaryRow, error) {
	query := `
		SELECT
			u.id,
			u.full_name,
			u.email,
			count(a.id) FILTER (WHERE a.clock_out IS NOT NULL),
			COALESCE(sum(a.worked_seconds), 0),
			count(a.id) FILTER (WHERE a.is_late),
			count(a.id) FILTER (WHERE a.is_early_logout),
			COALESCE(sum(a.overtime_seconds), 0)
		FROM users u
		LEFT JOIN attendance_sessions a
			ON a.user_id = u.id AND a.clock_in >= $1 AND a.clock_in <= $2
		WHERE u.is_active
	`
	args := []any{from, to}

	if managerID != nil {
		args = append(args, *managerID)
		query += " AND u.manager_id = $3"
	}
	query += `
		GROUP BY u.id, u.full_name, u.email
		ORDER BY u.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make([]*domain.AttendanceSummaryRow, 0)
	for rows.Next() {
		row := &domain.AttendanceSummaryRow{}
		dst := []any{
			&row.UserID,
			&row.FullName,
			&row.Email,
			&row.DaysWorked,
			&row.WorkedSeconds,
			&row.LateCount,
			&row.EarlyLogoutCount,
			&row.OvertimeSeconds,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}
