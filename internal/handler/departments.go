package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/konecta-dev/wfm/backend/internal/domain"
)

func (h *Handler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.repository.GetAllDepartments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取部门列表成功", departments)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
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

	department := &domain.Department{
		Name: strings.TrimSpace(req.Name),
	}
	if department.Name == "" {
		h.errorResponse(w, r, "部门名称不能为空")
		return
	}

	if err := h.repository.CreateDepartment(department); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "departments_name_key":
			h.errorResponse(w, r, "部门名称已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "部门创建成功", department)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "部门ID无效")
		return
	}

	var req struct {
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

	department := &domain.Department{
		ID:   id,
		Name: strings.TrimSpace(req.Name),
	}
	if department.Name == "" {
		h.errorResponse(w, r, "部门名称不能为空")
		return
	}

	if err := h.repository.UpdateDepartment(department); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "部门不存在")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "departments_name_key":
			h.errorResponse(w, r, "部门名称已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "部门更新成功", department)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "部门ID无效")
		return
	}

	if err := h.repository.DeleteDepartment(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "部门不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "部门删除成功", nil)
}
