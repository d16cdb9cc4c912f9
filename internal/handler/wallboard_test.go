package handler

import (
	"testing"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func auxPtr(t domain.AuxType) *domain.AuxType {
	return &t
}

func TestAgentState(t *testing.T) {
	clockIn := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  *domain.WallboardAgentRow
		want domain.WallboardAgentState
	}{
		{
			name: "还没打卡",
			row:  &domain.WallboardAgentRow{},
			want: domain.WallboardOff,
		},
		{
			name: "已下班",
			row:  &domain.WallboardAgentRow{ClockIn: timePtr(clockIn), ClockOut: timePtr(clockOut)},
			want: domain.WallboardClockedOut,
		},
		{
			name: "在 AUX 状态中",
			row:  &domain.WallboardAgentRow{ClockIn: timePtr(clockIn), CurrentAux: auxPtr(domain.AuxLunch)},
			want: domain.WallboardAux,
		},
		{
			name: "在线可接线",
			row:  &domain.WallboardAgentRow{ClockIn: timePtr(clockIn)},
			want: domain.WallboardAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agentState(tt.row))
		})
	}
}

func TestBuildWallboard(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	clockIn := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)
	shiftEnd := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)
	lateShiftEnd := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)

	rows := []*domain.WallboardAgentRow{
		// 已过班次结束还在线，计入加班中
		{UserID: 1, FullName: "张三", ClockIn: timePtr(clockIn), ShiftEnd: timePtr(shiftEnd)},
		// 晚班还没到结束时间，在线但不算加班
		{UserID: 2, FullName: "李四", ClockIn: timePtr(clockIn), ShiftEnd: timePtr(lateShiftEnd), IsLate: true},
		// 午餐中，既在线又算休息
		{UserID: 3, FullName: "王五", ClockIn: timePtr(clockIn), CurrentAux: auxPtr(domain.AuxLunch), ShiftEnd: timePtr(lateShiftEnd)},
		// 开会不算休息
		{UserID: 4, FullName: "赵六", ClockIn: timePtr(clockIn), CurrentAux: auxPtr(domain.AuxMeeting), ShiftEnd: timePtr(lateShiftEnd)},
		// 已下班，不在线
		{UserID: 5, FullName: "孙七", ClockIn: timePtr(clockIn), ClockOut: timePtr(clockOut)},
		// 还没打卡
		{UserID: 6, FullName: "周八"},
	}

	board := buildWallboard(now, "2024-05-01", rows)

	require.Len(t, board.Agents, 6)
	assert.Equal(t, "2024-05-01", board.Date)
	assert.Equal(t, 4, board.AgentsOnline)
	assert.Equal(t, 1, board.AgentsOnBreak)
	assert.Equal(t, 1, board.LateToday)
	assert.Equal(t, 1, board.OvertimeRunning)

	assert.Equal(t, domain.WallboardAvailable, board.Agents[0].State)
	assert.Equal(t, domain.WallboardAux, board.Agents[2].State)
	assert.Equal(t, domain.WallboardClockedOut, board.Agents[4].State)
	assert.Equal(t, domain.WallboardOff, board.Agents[5].State)
}
