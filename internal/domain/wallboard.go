package domain

import "time"

type WallboardAgentState string

const (
	WallboardOff        WallboardAgentState = "off"         // 今天还没有打卡
	WallboardClockedOut WallboardAgentState = "clocked_out" // 已下班
	WallboardAux        WallboardAgentState = "aux"         // 在某个 AUX 状态中
	WallboardAvailable  WallboardAgentState = "available"   // 在线且可接线
)

// WallboardAgentRow 是实时看板查询的原始行，状态判定由 handler 完成
type WallboardAgentRow struct {
	UserID     int64
	FullName   string
	ClockIn    *time.Time
	ClockOut   *time.Time
	IsLate     bool
	CurrentAux *AuxType
	ShiftEnd   *time.Time
}

type WallboardAgent struct {
	UserID     int64               `json:"userID"`
	FullName   string              `json:"fullName"`
	State      WallboardAgentState `json:"state"`
	CurrentAux *AuxType            `json:"currentAux"`
	IsLate     bool                `json:"isLate"`
	ClockIn    *time.Time          `json:"clockIn"`
	ClockOut   *time.Time          `json:"clockOut"`
}

type Wallboard struct {
	Date            string            `json:"date"`
	AgentsOnline    int               `json:"agentsOnline"`
	AgentsOnBreak   int               `json:"agentsOnBreak"`
	LateToday       int               `json:"lateToday"`
	OvertimeRunning int               `json:"overtimeRunning"`
	Agents          []*WallboardAgent `json:"agents"`
}
