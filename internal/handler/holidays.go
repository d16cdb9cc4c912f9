package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (h *Handler) GetAllHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.repository.GetAllHolidays()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取节假日成功", holidays)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required"`
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, errors.New("date 格式错误，应为 2006-01-02"))
		return
	}

	holiday := &domain.Holiday{
		Date: date,
		Name: req.Name,
	}

	if err := h.repository.CreateHoliday(holiday); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "节假日添加成功", holiday)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "节假日ID无效")
		return
	}

	if err := h.repository.DeleteHoliday(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "节假日不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "节假日删除成功", nil)
}
