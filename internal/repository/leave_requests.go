package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

const leaveRequestColumns = `id, user_id, type, start_date, end_date, start_time, end_time, reason, file_url, status, approved_by, created_at`

func scanLeaveRequest(row interface{ Scan(dst ...any) error }, lr *domain.LeaveRequest) error {
	dst := []any{
		&lr.ID,
		&lr.UserID,
		&lr.Type,
		&lr.StartDate,
		&lr.EndDate,
		&lr.StartTime,
		&lr.EndTime,
		&lr.Reason,
		&lr.FileURL,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.CreatedAt,
	}
	return row.Scan(dst...)
}

func (r *Repository) CreateLeaveRequest(lr *domain.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (user_id, type, start_date, end_date, start_time, end_time, reason, file_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
		RETURNING id, status, approved_by, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{lr.UserID, lr.Type, lr.StartDate, lr.EndDate, lr.StartTime, lr.EndTime, lr.Reason, lr.FileURL}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&lr.ID, &lr.Status, &lr.ApprovedBy, &lr.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetLeaveRequestsByUser(userID int64) ([]*domain.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.LeaveRequest, 0)
	for rows.Next() {
		lr := &domain.LeaveRequest{}
		if err := scanLeaveRequest(rows, lr); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// 主管只能看到直属下级的待审批请求
func (r *Repository) GetPendingLeaveForManager(managerID int64) ([]*domain.LeaveRequestWithRequester, error) {
	query := `
		SELECT lr.id, lr.user_id, lr.type, lr.start_date, lr.end_date, lr.start_time, lr.end_time,
			lr.reason, lr.file_url, lr.status, lr.approved_by, lr.created_at, u.full_name
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE u.manager_id = $1 AND lr.status = 'pending'
		ORDER BY lr.created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.LeaveRequestWithRequester, 0)
	for rows.Next() {
		lr := &domain.LeaveRequestWithRequester{}
		dst := []any{
			&lr.ID,
			&lr.UserID,
			&lr.Type,
			&lr.StartDate,
			&lr.EndDate,
			&lr.StartTime,
			&lr.EndTime,
			&lr.Reason,
			&lr.FileURL,
			&lr.Status,
			&lr.ApprovedBy,
			&lr.CreatedAt,
			&lr.RequesterName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// DecideLeaveRequest 用单条带条件的 UPDATE 完成审批：
// 只有该请求还处于 pending 且申请人的直属主管是 managerID 时才会生效，
// 没有命中任何行时统一返回 ErrNotFound，重复审批也会落到这个分支。
func (r *Repository) DecideLeaveRequest(id int64, managerID int64, approve bool) (*domain.LeaveRequest, error) {
	status := domain.LeaveRejected
	if approve {
		status = domain.LeaveApproved
	}

	query := `
		UPDATE leave_requests lr
		SET status = $3, approved_by = $2
		FROM users u
		WHERE lr.id = $1
			AND lr.user_id = u.id
			AND u.manager_id = $2
			AND lr.status = 'pending'
		RETURNING lr.id, lr.user_id, lr.type, lr.start_date, lr.end_date, lr.start_time, lr.end_time,
			lr.reason, lr.file_url, lr.status, lr.approved_by, lr.created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	lr := &domain.LeaveRequest{}
	if err := scanLeaveRequest(r.dbpool.QueryRowContext(ctx, query, id, managerID, status), lr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return lr, nil
}
