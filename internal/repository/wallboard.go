package repository

import (
	"context"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/tracker"
)

// GetWallboardRows 查询实时看板的原始数据：每个在职客服当天的打卡记录、
// 当前所处的 AUX 状态和当天的班次结束时间。managerID 为空时查所有团队。
func (r *Repository) GetWallboardRows(managerID *int64, date time.Time) ([]*domain.WallboardAgentRow, error) {
	query := `
		SELECT
			u.id,
			u.full_name,
			a.clock_in,
			a.clock_out,
			a.is_late,
			(
				SELECT ax.aux_type FROM aux_logs ax
				WHERE ax.user_id = u.id AND ax.end_time IS NULL
				ORDER BY ax.start_time DESC
				LIMIT 1
			),
			s.shift_end
		FROM users u
		LEFT JOIN attendance_sessions a
			ON a.user_id = u.id AND a.clock_in::date = $1
		LEFT JOIN schedules s
			ON s.user_id = u.id AND s.date = $1
		WHERE u.role = 'agent' AND u.is_active
	`
	args := []any{tracker.DayBucket(date)}

	if managerID != nil {
		args = append(args, *managerID)
		query += " AND u.manager_id = $2"
	}
	query += " ORDER BY u.full_name"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.WallboardAgentRow, 0)
	for rows.Next() {
		entry := &domain.WallboardAgentRow{}
		var isLate *bool
		dst := []any{&entry.UserID, &entry.FullName, &entry.ClockIn, &entry.ClockOut, &isLate, &entry.CurrentAux, &entry.ShiftEnd}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if isLate != nil {
			entry.IsLate = *isLate
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
