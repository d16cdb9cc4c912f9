package domain

import "time"

type SwapTargetStatus string

const (
	SwapTargetPending  SwapTargetStatus = "pending"
	SwapTargetAccepted SwapTargetStatus = "accepted"
	SwapTargetDeclined SwapTargetStatus = "declined"
)

type SwapManagerApproval string

const (
	SwapManagerPending  SwapManagerApproval = "pending"
	SwapManagerApproved SwapManagerApproval = "approved"
	SwapManagerRejected SwapManagerApproval = "rejected"
)

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapFinalized SwapStatus = "finalized"
	SwapCancelled SwapStatus = "cancelled"
)

// 换班需要两个阶段的确认：先由被换班的同事接受，再由主管批准
type ShiftSwap struct {
	ID              int64               `json:"id"`
	RequesterID     int64               `json:"requesterID"`
	TargetID        int64               `json:"targetID"`
	Date            time.Time           `json:"date"`
	Reason          *string             `json:"reason"`
	RequesterStatus SwapTargetStatus    `json:"requesterStatus"`
	ManagerApproval SwapManagerApproval `json:"managerApproval"`
	Status          SwapStatus          `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
}
