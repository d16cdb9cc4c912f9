package repository

import (
	"database/sql"

	"github.com/konecta-dev/wfm/backend/internal/config"
	"github.com/konecta-dev/wfm/backend/internal/tracker"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) auxLimits() tracker.Limits {
	return tracker.Limits{
		BreakLimitMinutes: r.cfg.Aux.BreakLimitMinutes,
		LunchLimitMinutes: r.cfg.Aux.LunchLimitMinutes,
	}
}
