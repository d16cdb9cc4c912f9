package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

// 解析查询参数中的可选日期区间，格式为 2006-01-02
func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		t, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return nil, nil, errors.New("from 参数格式错误，应为 2006-01-02")
		}
		from = &t
	}

	if toParam := r.URL.Query().Get("to"); toParam != "" {
		t, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return nil, nil, errors.New("to 参数格式错误，应为 2006-01-02")
		}
		to = &t
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, errors.New("to 不能早于 from")
	}

	return from, to, nil
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	session, err := h.repository.ClockIn(myInfo.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyOpen):
			h.errorResponse(w, r, "您已上班打卡，请勿重复打卡")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "上班打卡成功", session)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	session, err := h.repository.ClockOut(myInfo.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoOpenSession):
			h.errorResponse(w, r, "您还没有上班打卡")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "下班打卡成功", session)
}

func (h *Handler) GetMyAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	sessions, err := h.repository.GetAttendanceHistory(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取考勤记录成功", sessions)
}

func (h *Handler) GetTeamAttendance(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 默认查看今天的团队考勤
	date := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		t, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			h.badRequest(w, r, errors.New("date 参数格式错误，应为 2006-01-02"))
			return
		}
		date = t
	}

	entries, err := h.repository.GetTeamAttendance(myInfo.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取团队考勤成功", entries)
}
