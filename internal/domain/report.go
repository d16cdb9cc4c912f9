package domain

// 考勤汇总报表中的一行，统计区间由查询参数决定
type AttendanceSummaryRow struct {
	UserID           int64  `json:"userID"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	DaysWorked       int64  `json:"daysWorked"`
	WorkedSeconds    int64  `json:"workedSeconds"`
	LateCount        int64  `json:"lateCount"`
	EarlyLogoutCount int64  `json:"earlyLogoutCount"`
	OvertimeSeconds  int64  `json:"overtimeSeconds"`
}
