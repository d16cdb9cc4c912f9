package domain

import "time"

type AttendanceSession struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userID"`
	ClockIn         time.Time  `json:"clockIn"`
	ClockOut        *time.Time `json:"clockOut"` // 为空表示还没有下班打卡
	WorkedSeconds   *int64     `json:"workedSeconds"`
	IsLate          bool       `json:"isLate"`
	IsEarlyLogout   bool       `json:"isEarlyLogout"`
	OvertimeSeconds int64      `json:"overtimeSeconds"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// 主管团队视图中的一行，没有打卡的成员 Session 为空
type TeamAttendanceEntry struct {
	UserID   int64              `json:"userID"`
	FullName string             `json:"fullName"`
	Session  *AttendanceSession `json:"session"`
}
