package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/konecta-dev/wfm/backend/internal/domain"
)

const shiftSwapColumns = `id, requester_id, target_id, date, reason, requester_status, manager_approval, status, created_at`

func scanShiftSwap(row interface{ Scan(dst ...any) error }, swap *domain.ShiftSwap) error {
	dst := []any{
		&swap.ID,
		&swap.RequesterID,
		&swap.TargetID,
		&swap.Date,
		&swap.Reason,
		&swap.RequesterStatus,
		&swap.ManagerApproval,
		&swap.Status,
		&swap.CreatedAt,
	}
	return row.Scan(dst...)
}

func (r *Repository) CreateShiftSwap(swap *domain.ShiftSwap) error {
	query := `
		INSERT INTO shift_swaps (requester_id, target_id, date, reason, requester_status, manager_approval, status)
		VALUES ($1, $2, $3, $4, 'pending', 'pending', 'pending')
		RETURNING id, requester_status, manager_approval, status, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{swap.RequesterID, swap.TargetID, swap.Date, swap.Reason}
	dst := []any{&swap.ID, &swap.RequesterStatus, &swap.ManagerApproval, &swap.Status, &swap.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_swaps_requester_target_check" {
			return domain.ErrSelfSwap
		}
		return err
	}

	return nil
}

func (r *Repository) GetShiftSwapsByUser(userID int64) ([]*domain.ShiftSwap, error) {
	query := `
		SELECT ` + shiftSwapColumns + `
		FROM shift_swaps
		WHERE requester_id = $1 OR target_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	swaps := make([]*domain.ShiftSwap, 0)
	for rows.Next() {
		swap := &domain.ShiftSwap{}
		if err := scanShiftSwap(rows, swap); err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return swaps, nil
}

// RespondToShiftSwap 记录被换班同事的答复。
// 拒绝时整体状态直接置为 cancelled，不把记录留在 pending 状态。
// 只有目标本人且尚未答复时才会命中，否则返回 ErrNotFound。
func (r *Repository) RespondToShiftSwap(id int64, targetID int64, accept bool) (*domain.ShiftSwap, error) {
	requesterStatus := domain.SwapTargetDeclined
	status := domain.SwapCancelled
	if accept {
		requesterStatus = domain.SwapTargetAccepted
		status = domain.SwapPending
	}

	query := `
		UPDATE shift_swaps
		SET requester_status = $3, status = $4
		WHERE id = $1
			AND target_id = $2
			AND requester_status = 'pending'
			AND status = 'pending'
		RETURNING ` + shiftSwapColumns + `
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	swap := &domain.ShiftSwap{}
	if err := scanShiftSwap(r.dbpool.QueryRowContext(ctx, query, id, targetID, requesterStatus, status), swap); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return swap, nil
}

// DecideShiftSwapAsManager 记录主管的审批。
// 必须满足：目标已接受、主管还没审批过、主管是双方中至少一方的直属主管。
func (r *Repository) DecideShiftSwapAsManager(id int64, managerID int64, approve bool) (*domain.ShiftSwap, error) {
	approval := domain.SwapManagerRejected
	status := domain.SwapCancelled
	if approve {
		approval = domain.SwapManagerApproved
		status = domain.SwapFinalized
	}

	query := `
		UPDATE shift_swaps
		SET manager_approval = $3, status = $4
		WHERE id = $1
			AND requester_status = 'accepted'
			AND manager_approval = 'pending'
			AND EXISTS (
				SELECT 1 FROM users u
				WHERE u.id IN (shift_swaps.requester_id, shift_swaps.target_id) AND u.manager_id = $2
			)
		RETURNING ` + shiftSwapColumns + `
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	swap := &domain.ShiftSwap{}
	if err := scanShiftSwap(r.dbpool.QueryRowContext(ctx, query, id, managerID, approval, status), swap); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return swap, nil
}

func (r *Repository) GetPendingShiftSwapsForManager(managerID int64) ([]*domain.ShiftSwap, error) {
	query := `
		SELECT ` + shiftSwapColumns + `
		FROM shift_swaps ss
		WHERE ss.requester_status = 'accepted'
			AND ss.manager_approval = 'pending'
			AND EXISTS (
				SELECT 1 FROM users u
				WHERE u.id IN (ss.requester_id, ss.target_id) AND u.manager_id = $1
			)
		ORDER BY ss.created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	swaps := make([]*domain.ShiftSwap, 0)
	for rows.Next() {
		swap := &domain.ShiftSwap{}
		if err := scanShiftSwap(rows, swap); err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return swaps, nil
}
