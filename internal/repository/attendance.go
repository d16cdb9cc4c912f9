package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/tracker"
)

const attendanceColumns = `id, user_id, clock_in, clock_out, worked_seconds, is_late, is_early_logout, overtime_seconds, created_at`

func scanAttendance(row interface{ Scan(dst ...any) error }, session *domain.AttendanceSession) error {
	dst := []any{
		&session.ID,
		&session.UserID,
		&session.ClockIn,
		&session.ClockOut,
		&session.WorkedSeconds,
		&session.IsLate,
		&session.IsEarlyLogout,
		&session.OvertimeSeconds,
		&session.CreatedAt,
	}
	return row.Scan(dst...)
}

// ClockIn 在一个事务中完成上班打卡：
// 先锁住该用户的未关闭记录以阻止并发打卡，再根据当天排班判定是否迟到。
// 插入语句带 NOT EXISTS 守卫，配合数据库上 "每人至多一条未关闭记录" 的
// 部分唯一索引 attendance_sessions_one_open_per_user，保证并发时至多一次成功。
func (r *Repository) ClockIn(userID int64, now time.Time) (*domain.AttendanceSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var openID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM attendance_sessions
		WHERE user_id = $1 AND clock_out IS NULL
		FOR UPDATE
	`, userID).Scan(&openID)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyOpen
	case errors.Is(err, sql.ErrNoRows):
		// 没有未关闭的记录，允许打卡
	default:
		return nil, err
	}

	var shiftStart *time.Time
	err = tx.QueryRowContext(ctx, `
		SELECT shift_start FROM schedules WHERE user_id = $1 AND date = $2
	`, userID, tracker.DayBucket(now)).Scan(&shiftStart)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	isLate := tracker.IsLate(now, shiftStart)

	session := &domain.AttendanceSession{}
	err = scanAttendance(tx.QueryRowContext(ctx, `
		INSERT INTO attendance_sessions (user_id, clock_in, is_late)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_sessions WHERE user_id = $1 AND clock_out IS NULL
		)
		RETURNING `+attendanceColumns+`
	`, userID, now, isLate), session)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrAlreadyOpen
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "attendance_sessions_one_open_per_user":
			return nil, domain.ErrAlreadyOpen
		default:
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return session, nil
}

// ClockOut 关闭当前未关闭的打卡记录，并根据当天排班计算工时、早退和加班
func (r *Repository) ClockOut(userID int64, now time.Time) (*domain.AttendanceSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		openID  int64
		clockIn time.Time
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, clock_in FROM attendance_sessions
		WHERE user_id = $1 AND clock_out IS NULL
		FOR UPDATE
	`, userID).Scan(&openID, &clockIn)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, domain.ErrNoOpenSession
	case err != nil:
		return nil, err
	}

	var shiftEnd *time.Time
	err = tx.QueryRowContext(ctx, `
		SELECT shift_end FROM schedules WHERE user_id = $1 AND date = $2
	`, userID, tracker.DayBucket(now)).Scan(&shiftEnd)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	closure := tracker.CloseAttendance(now, clockIn, shiftEnd)

	session := &domain.AttendanceSession{}
	err = scanAttendance(tx.QueryRowContext(ctx, `
		UPDATE attendance_sessions
		SET clock_out = $2,
			worked_seconds = $3,
			is_early_logout = $4,
			overtime_seconds = $5
		WHERE id = $1 AND clock_out IS NULL
		RETURNING `+attendanceColumns+`
	`, openID, now, closure.WorkedSeconds, closure.IsEarlyLogout, closure.OvertimeSeconds), session)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *Repository) GetAttendanceHistory(userID int64, from *time.Time, to *time.Time) ([]*domain.AttendanceSession, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_sessions
		WHERE user_id = $1
	`
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND clock_in >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND clock_in <= $%d", len(args))
	}
	query += " ORDER BY clock_in DESC"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.AttendanceSession, 0)
	for rows.Next() {
		session := &domain.AttendanceSession{}
		if err := scanAttendance(rows, session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// 主管查看团队某一天的出勤情况，没有打卡的成员也要在列表中
func (r *Repository) GetTeamAttendance(managerID int64, date time.Time) ([]*domain.TeamAttendanceEntry, error) {
	query := `
		SELECT
			u.id,
			u.full_name,
			a.id,
			a.clock_in,
			a.clock_out,
			a.worked_seconds,
			a.is_late,
			a.is_early_logout,
			a.overtime_seconds
		FROM users u
		LEFT JOIN attendance_sessions a
			ON a.user_id = u.id AND a.clock_in::date = $2
		WHERE u.manager_id = $1
		ORDER BY u.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, managerID, tracker.DayBucket(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TeamAttendanceEntry, 0)
	for rows.Next() {
		entry := &domain.TeamAttendanceEntry{}
		var (
			sessionID       *int64
			clockIn         *time.Time
			clockOut        *time.Time
			workedSeconds   *int64
			isLate          *bool
			isEarlyLogout   *bool
			overtimeSeconds *int64
		)
		dst := []any{&entry.UserID, &entry.FullName, &sessionID, &clockIn, &clockOut, &workedSeconds, &isLate, &isEarlyLogout, &overtimeSeconds}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if sessionID != nil {
			entry.Session = &domain.AttendanceSession{
				ID:            *sessionID,
				UserID:        entry.UserID,
				ClockIn:       *clockIn,
				ClockOut:      clockOut,
				WorkedSeconds: workedSeconds,
			}
			if isLate != nil {
				entry.Session.IsLate = *isLate
			}
			if isEarlyLogout != nil {
				entry.Session.IsEarlyLogout = *isEarlyLogout
			}
			if overtimeSeconds != nil {
				entry.Session.OvertimeSeconds = *overtimeSeconds
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
