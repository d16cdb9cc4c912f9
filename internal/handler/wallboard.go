package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/tracker"
)

// 正在休息的判定只看有时长上限的三类状态，开会培训等不算休息
func onBreak(auxType *domain.AuxType) bool {
	if auxType == nil {
		return false
	}
	switch *auxType {
	case domain.AuxBreak, domain.AuxLunch, domain.AuxLastBreak:
		return true
	default:
		return false
	}
}

func agentState(row *domain.WallboardAgentRow) domain.WallboardAgentState {
	switch {
	case row.ClockIn == nil:
		return domain.WallboardOff
	case row.ClockOut != nil:
		return domain.WallboardClockedOut
	case row.CurrentAux != nil:
		return domain.WallboardAux
	default:
		return domain.WallboardAvailable
	}
}

// buildWallboard 把查询出来的原始行汇总成看板。
// "加班中" 指还没下班且已过当天班次结束时间的客服。
func buildWallboard(now time.Time, date string, rows []*domain.WallboardAgentRow) *domain.Wallboard {
	board := &domain.Wallboard{
		Date:   date,
		Agents: make([]*domain.WallboardAgent, 0, len(rows)),
	}

	for _, row := range rows {
		state := agentState(row)

		if state == domain.WallboardAux || state == domain.WallboardAvailable {
			board.AgentsOnline++
			if row.ShiftEnd != nil && now.After(*row.ShiftEnd) {
				board.OvertimeRunning++
			}
		}
		if state == domain.WallboardAux && onBreak(row.CurrentAux) {
			board.AgentsOnBreak++
		}
		if row.IsLate {
			board.LateToday++
		}

		board.Agents = append(board.Agents, &domain.WallboardAgent{
			UserID:     row.UserID,
			FullName:   row.FullName,
			State:      state,
			CurrentAux: row.CurrentAux,
			IsLate:     row.IsLate,
			ClockIn:    row.ClockIn,
			ClockOut:   row.ClockOut,
		})
	}

	return board
}

// GetWallboard 实时看板：在线、休息中、迟到和加班中的人数，以及每个客服的当前状态
func (h *Handler) GetWallboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	date := now
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			h.badRequest(w, r, errors.New("date 参数格式错误，应为 2006-01-02"))
			return
		}
		date = parsed
	}

	rows, err := h.repository.GetWallboardRows(h.reportScope(r), date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取实时看板成功", buildWallboard(now, tracker.DayBucket(date), rows))
}
