package domain

import "time"

type LeaveType string

const (
	LeaveAnnual       LeaveType = "annual"
	LeaveSick         LeaveType = "sick"
	LeaveCasual       LeaveType = "casual"
	LeaveOvertime     LeaveType = "overtime"
	LeaveCancelDayOff LeaveType = "cancel_day_off"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

type LeaveRequest struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"userID"`
	Type       LeaveType   `json:"type"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	StartTime  *string     `json:"startTime"` // overtime 类型必填，格式 15:04
	EndTime    *string     `json:"endTime"`
	Reason     *string     `json:"reason"`
	FileURL    *string     `json:"fileURL"` // sick 类型必须提供证明材料
	Status     LeaveStatus `json:"status"`
	ApprovedBy *int64      `json:"approvedBy"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// 主管审批列表中带上申请人姓名，避免前端再查一次
type LeaveRequestWithRequester struct {
	LeaveRequest
	RequesterName string `json:"requesterName"`
}
