package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (h *Handler) GetAllAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repository.GetAllAnnouncements()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取公告成功", announcements)
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Title string `json:"title" validate:"required"`
		Body  string `json:"body" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	announcement := &domain.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: myInfo.ID,
	}

	if err := h.repository.CreateAnnouncement(announcement); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "公告发布成功", announcement)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "公告ID无效")
		return
	}

	if err := h.repository.DeleteAnnouncement(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "公告不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "公告删除成功", nil)
}
