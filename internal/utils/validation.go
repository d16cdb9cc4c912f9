package utils

import (
	"fmt"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

// ValidateLeaveRequest 检查请假申请的类型相关规则：
// 病假必须附带证明材料，加班申请必须给出起止时间。
func ValidateLeaveRequest(lr *domain.LeaveRequest) error {
	if lr.EndDate.Before(lr.StartDate) {
		return fmt.Errorf("结束日期不能早于开始日期")
	}

	if lr.Type == domain.LeaveSick && (lr.FileURL == nil || *lr.FileURL == "") {
		return domain.ErrMissingDocument
	}

	if lr.Type == domain.LeaveOvertime {
		if lr.StartTime == nil || lr.EndTime == nil {
			return domain.ErrMissingOvertimeWindow
		}
		for _, clock := range []string{*lr.StartTime, *lr.EndTime} {
			if _, err := time.Parse("15:04", clock); err != nil {
				return fmt.Errorf("时间 %s 的格式错误，应为 HH:MM", clock)
			}
		}
	}

	return nil
}

// 不允许和自己换班
func ValidateShiftSwapProposal(requesterID int64, targetID int64) error {
	if requesterID == targetID {
		return domain.ErrSelfSwap
	}
	return nil
}

// 排班的班次时间要么都为空（休息日），要么成对出现且结束晚于开始
func ValidateScheduleShiftWindow(shiftStart *time.Time, shiftEnd *time.Time) error {
	if shiftStart == nil && shiftEnd == nil {
		return nil
	}
	if shiftStart == nil || shiftEnd == nil {
		return fmt.Errorf("班次开始时间和结束时间必须同时给出")
	}
	if !shiftEnd.After(*shiftStart) {
		return fmt.Errorf("班次结束时间必须晚于开始时间")
	}
	return nil
}
