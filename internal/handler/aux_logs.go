package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (h *Handler) StartAux(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		AuxType string `json:"auxType" validate:"required,oneof=break lunch last_break meeting coaching training technical_issue floor_support available"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	log, err := h.repository.StartAux(myInfo.ID, domain.AuxType(req.AuxType), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDailyLimitExceeded):
			h.errorResponse(w, r, "该状态今天已使用过，不能重复使用")
		case errors.Is(err, domain.ErrAlreadyOpen):
			h.errorResponse(w, r, "请先结束当前状态")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "状态开始成功", log)
}

func (h *Handler) EndAux(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	log, err := h.repository.EndAux(myInfo.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoOpenSession):
			h.errorResponse(w, r, "当前没有进行中的状态")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "状态结束成功", log)
}

func (h *Handler) GetMyAuxHistory(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	logs, err := h.repository.GetAuxHistory(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取状态记录成功", logs)
}
