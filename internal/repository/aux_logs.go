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

const auxLogColumns = `id, user_id, aux_type, start_time, end_time, duration_seconds, over_limit, created_at`

func scanAuxLog(row interface{ Scan(dst ...any) error }, log *domain.AuxLog) error {
	dst := []any{
		&log.ID,
		&log.UserID,
		&log.AuxType,
		&log.StartTime,
		&log.EndTime,
		&log.DurationSeconds,
		&log.OverLimit,
		&log.CreatedAt,
	}
	return row.Scan(dst...)
}

// StartAux 在一个事务中完成 AUX 状态切换：
// 先检查每日一次的类型是否已经用过，再自动关闭当前未结束的状态，
// 最后打开新状态。插入语句带 NOT EXISTS 守卫，配合部分唯一索引
// aux_logs_one_open_per_user 保证并发时每人至多一条未结束记录。
func (r *Repository) StartAux(userID int64, auxType domain.AuxType, now time.Time) (*domain.AuxLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if tracker.OncePerDay(auxType) {
		var usedToday bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM aux_logs
				WHERE user_id = $1 AND aux_type = $2 AND start_time::date = $3
			)
		`, userID, auxType, tracker.DayBucket(now)).Scan(&usedToday)
		if err != nil {
			return nil, err
		}
		if usedToday {
			return nil, domain.ErrDailyLimitExceeded
		}
	}

	if _, err := r.closeOpenAux(ctx, tx, userID, now, false); err != nil {
		return nil, err
	}

	log := &domain.AuxLog{}
	err = scanAuxLog(tx.QueryRowContext(ctx, `
		INSERT INTO aux_logs (user_id, aux_type, start_time)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (
			SELECT 1 FROM aux_logs WHERE user_id = $1 AND end_time IS NULL
		)
		RETURNING `+auxLogColumns+`
	`, userID, auxType, now), log)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrAlreadyOpen
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "aux_logs_one_open_per_user":
			return nil, domain.ErrAlreadyOpen
		default:
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return log, nil
}

// EndAux 关闭当前未结束的 AUX 状态并返回关闭后的记录
func (r *Repository) EndAux(userID int64, now time.Time) (*domain.AuxLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	closed, err := r.closeOpenAux(ctx, tx, userID, now, true)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return closed, nil
}

// 锁住未结束的 AUX 记录并关闭它，required 为 true 时没有记录算错误
func (r *Repository) closeOpenAux(ctx context.Context, tx *sql.Tx, userID int64, now time.Time, required bool) (*domain.AuxLog, error) {
	var (
		openID    int64
		auxType   domain.AuxType
		startTime time.Time
	)
	err := tx.QueryRowContext(ctx, `
		SELECT id, aux_type, start_time FROM aux_logs
		WHERE user_id = $1 AND end_time IS NULL
		FOR UPDATE
	`, userID).Scan(&openID, &auxType, &startTime)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if required {
			return nil, domain.ErrNoOpenSession
		}
		return nil, nil
	case err != nil:
		return nil, err
	}

	closure := r.auxLimits().CloseAux(now, startTime, auxType)

	log := &domain.AuxLog{}
	err = scanAuxLog(tx.QueryRowContext(ctx, `
		UPDATE aux_logs
		SET end_time = $2,
			duration_seconds = $3,
			over_limit = $4
		WHERE id = $1 AND end_time IS NULL
		RETURNING `+auxLogColumns+`
	`, openID, now, closure.DurationSeconds, closure.OverLimit), log)
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *Repository) GetAuxHistory(userID int64, from *time.Time, to *time.Time) ([]*domain.AuxLog, error) {
	query := `
		SELECT ` + auxLogColumns + `
		FROM aux_logs
		WHERE user_id = $1
	`
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND start_time <= $%d", len(args))
	}
	query += " ORDER BY start_time DESC"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.AuxLog, 0)
	for rows.Next() {
		log := &domain.AuxLog{}
		if err := scanAuxLog(rows, log); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
