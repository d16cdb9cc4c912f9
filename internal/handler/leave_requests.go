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

func (h *Handler) SubmitLeaveRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Type      string  `json:"type" validate:"required,oneof=annual sick casual overtime cancel_day_off"`
		StartDate string  `json:"startDate" validate:"required"`
		EndDate   string  `json:"endDate" validate:"required"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Reason    *string `json:"reason"`
		FileURL   *string `json:"fileURL"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, errors.New("startDate 格式错误，应为 2006-01-02"))
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.badRequest(w, r, errors.New("endDate 格式错误，应为 2006-01-02"))
		return
	}

	lr := &domain.LeaveRequest{
		UserID:    myInfo.ID,
		Type:      domain.LeaveType(req.Type),
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		FileURL:   req.FileURL,
	}

	if err := utils.ValidateLeaveRequest(lr); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingDocument):
			h.errorResponse(w, r, "病假必须上传证明材料")
		case errors.Is(err, domain.ErrMissingOvertimeWindow):
			h.errorResponse(w, r, "加班申请必须提供起止时间")
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	if err := h.repository.CreateLeaveRequest(lr); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通知主管有新的申请待审批
	if myInfo.ManagerID != nil {
		notificationType := "leave_request"
		if err := h.repository.CreateNotification(&domain.Notification{
			UserID:  *myInfo.ManagerID,
			Message: fmt.Sprintf("%s 提交了请假申请，等待您的审批", myInfo.FullName),
			Type:    &notificationType,
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "请假申请提交成功", lr)
}

func (h *Handler) GetMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requests, err := h.repository.GetLeaveRequestsByUser(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假记录成功", requests)
}

func (h *Handler) GetPendingLeaveRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requests, err := h.repository.GetPendingLeaveForManager(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取待审批请假申请成功", requests)
}

func (h *Handler) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeaveRequest(w, r, true)
}

func (h *Handler) RejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeaveRequest(w, r, false)
}

func (h *Handler) decideLeaveRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "申请ID无效")
		return
	}

	lr, err := h.repository.DecideLeaveRequest(id, myInfo.ID, approve)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "申请不存在或已被处理")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	decision := "已批准"
	if !approve {
		decision = "已驳回"
	}

	// 通知申请人审批结果
	notificationType := "leave_decided"
	if err := h.repository.CreateNotification(&domain.Notification{
		UserID:  lr.UserID,
		Message: fmt.Sprintf("您的请假申请%s", decision),
		Type:    &notificationType,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	requester, err := h.repository.GetUserByID(lr.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMailMessage(domain.MailMessage{
		Type: "leave_decided",
		To:   requester.Email,
		Data: domain.LeaveDecidedMailData{
			FullName:  requester.FullName,
			LeaveType: string(lr.Type),
			StartDate: lr.StartDate.Format("2006-01-02"),
			EndDate:   lr.EndDate.Format("2006-01-02"),
			Approved:  approve,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("请假申请%s", decision), lr)
}
