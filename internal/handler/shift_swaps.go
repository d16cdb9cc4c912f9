package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/utils"
)

func (h *Handler) ProposeShiftSwap(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		TargetID int64   `json:"targetId" validate:"required"`
		Date     string  `json:"date" validate:"required"`
		Reason   *string `json:"reason"`
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

	if err := utils.ValidateShiftSwapProposal(myInfo.ID, req.TargetID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfSwap):
			h.errorResponse(w, r, "不能和自己换班")
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	swap := &domain.ShiftSwap{
		RequesterID: myInfo.ID,
		TargetID:    req.TargetID,
		Date:        date,
		Reason:      req.Reason,
	}

	if err := h.repository.CreateShiftSwap(swap); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfSwap):
			h.errorResponse(w, r, "不能和自己换班")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知被换班的同事
	notificationType := "shift_swap"
	if err := h.repository.CreateNotification(&domain.Notification{
		UserID:  swap.TargetID,
		Message: fmt.Sprintf("%s 向您发起了换班请求，等待您的确认", myInfo.FullName),
		Type:    &notificationType,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "换班请求发起成功", swap)
}

func (h *Handler) GetMyShiftSwaps(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	swaps, err := h.repository.GetShiftSwapsByUser(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取换班记录成功", swaps)
}

func (h *Handler) RespondToShiftSwap(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "换班ID无效")
		return
	}

	var req struct {
		Accept *bool `json:"accept" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	swap, err := h.repository.RespondToShiftSwap(id, myInfo.ID, *req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "换班请求不存在或已被处理")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知发起人同事的回应
	response := "接受了您的换班请求，等待主管批准"
	if !*req.Accept {
		response = "拒绝了您的换班请求"
	}

	notificationType := "shift_swap"
	if err := h.repository.CreateNotification(&domain.Notification{
		UserID:  swap.RequesterID,
		Message: fmt.Sprintf("%s %s", myInfo.FullName, response),
		Type:    &notificationType,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已回应换班请求", swap)
}

func (h *Handler) GetPendingShiftSwaps(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	swaps, err := h.repository.GetPendingShiftSwapsForManager(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取待审批换班请求成功", swaps)
}

func (h *Handler) ApproveShiftSwap(w http.ResponseWriter, r *http.Request) {
	h.decideShiftSwap(w, r, true)
}

func (h *Handler) RejectShiftSwap(w http.ResponseWriter, r *http.Request) {
	h.decideShiftSwap(w, r, false)
}

func (h *Handler) decideShiftSwap(w http.ResponseWriter, r *http.Request, approve bool) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "换班ID无效")
		return
	}

	swap, err := h.repository.DecideShiftSwapAsManager(id, myInfo.ID, approve)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "换班请求不存在或尚未被同事接受")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	decision := "已批准"
	if !approve {
		decision = "已驳回"
	}

	// 换班双方都要收到审批结果
	notificationType := "shift_swap_decided"
	for _, userID := range []int64{swap.RequesterID, swap.TargetID} {
		if err := h.repository.CreateNotification(&domain.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("%s 的换班申请%s", swap.Date.Format("2006-01-02"), decision),
			Type:    &notificationType,
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		user, err := h.repository.GetUserByID(userID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		if err := h.publishMailMessage(domain.MailMessage{
			Type: "shift_swap_decided",
			To:   user.Email,
			Data: domain.ShiftSwapDecidedMailData{
				FullName: user.FullName,
				Date:     swap.Date.Format("2006-01-02"),
				Approved: approve,
			},
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, fmt.Sprintf("换班申请%s", decision), swap)
}
