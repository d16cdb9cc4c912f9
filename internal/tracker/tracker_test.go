package tracker

import (
	"testing"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultLimits = Limits{
	BreakLimitMinutes: 15,
	LunchLimitMinutes: 60,
}

func date(hour, minute int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, 0, 0, time.UTC)
}

func TestIsLate(t *testing.T) {
	shiftStart := date(9, 0)

	assert.False(t, IsLate(date(8, 50), &shiftStart))
	assert.False(t, IsLate(date(9, 0), &shiftStart))
	assert.True(t, IsLate(date(9, 10), &shiftStart))
	assert.False(t, IsLate(date(9, 10), nil))
}

func TestCloseAttendance(t *testing.T) {
	shiftEnd := date(17, 0)

	tests := []struct {
		name     string
		now      time.Time
		clockIn  time.Time
		shiftEnd *time.Time
		want     AttendanceClosure
	}{
		{
			name:     "班次结束后下班产生加班",
			now:      date(18, 5),
			clockIn:  date(9, 10),
			shiftEnd: &shiftEnd,
			want: AttendanceClosure{
				WorkedSeconds:   8*3600 + 55*60,
				OvertimeSeconds: 65 * 60, // 排班时长按班次结束时间减去打卡时间计算
				IsEarlyLogout:   false,
			},
		},
		{
			name:     "班次结束前下班算早退",
			now:      date(16, 30),
			clockIn:  date(9, 0),
			shiftEnd: &shiftEnd,
			want: AttendanceClosure{
				WorkedSeconds:   7*3600 + 30*60,
				OvertimeSeconds: 0,
				IsEarlyLogout:   true,
			},
		},
		{
			name:     "没有排班时不做判定",
			now:      date(18, 0),
			clockIn:  date(9, 0),
			shiftEnd: nil,
			want: AttendanceClosure{
				WorkedSeconds:   9 * 3600,
				OvertimeSeconds: 0,
				IsEarlyLogout:   false,
			},
		},
		{
			name:     "刚好在班次结束时下班没有加班",
			now:      date(17, 0),
			clockIn:  date(9, 0),
			shiftEnd: &shiftEnd,
			want: AttendanceClosure{
				WorkedSeconds: 8 * 3600,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CloseAttendance(tt.now, tt.clockIn, tt.shiftEnd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloseAttendanceWorkedNonNegative(t *testing.T) {
	// 时钟回拨时工时不允许为负数
	got := CloseAttendance(date(8, 0), date(9, 0), nil)
	require.Equal(t, int64(0), got.WorkedSeconds)
}

func TestLimitFor(t *testing.T) {
	assert.Equal(t, 15*time.Minute, defaultLimits.LimitFor(domain.AuxBreak))
	assert.Equal(t, 15*time.Minute, defaultLimits.LimitFor(domain.AuxLastBreak))
	assert.Equal(t, 60*time.Minute, defaultLimits.LimitFor(domain.AuxLunch))
	assert.Equal(t, time.Duration(0), defaultLimits.LimitFor(domain.AuxMeeting))
	assert.Equal(t, time.Duration(0), defaultLimits.LimitFor(domain.AuxAvailable))
}

func TestOncePerDay(t *testing.T) {
	assert.True(t, OncePerDay(domain.AuxBreak))
	assert.True(t, OncePerDay(domain.AuxLunch))
	assert.True(t, OncePerDay(domain.AuxLastBreak))
	assert.False(t, OncePerDay(domain.AuxMeeting))
	assert.False(t, OncePerDay(domain.AuxTechnicalIssue))
}

func TestDayBucket(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		same  bool
	}{
		{
			name:  "同一天内的小休",
			start: date(10, 0),
			end:   date(10, 10),
			same:  true,
		},
		{
			name:  "跨午夜的小休只算开始那一天",
			start: time.Date(2024, 5, 1, 23, 50, 0, 0, time.UTC),
			end:   time.Date(2024, 5, 2, 0, 10, 0, 0, time.UTC),
			same:  false,
		},
		{
			name:  "非 UTC 时间按 UTC 日期分桶",
			start: time.Date(2024, 5, 2, 7, 0, 0, 0, time.FixedZone("UTC+8", 8*3600)),
			end:   time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC),
			same:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, SameStartDate(tt.start, tt.end))
		})
	}

	// 每日一次的查询用同一个桶做比较，跨午夜结束的状态不会占用第二天的额度
	crossMidnightStart := time.Date(2024, 5, 1, 23, 50, 0, 0, time.UTC)
	nextDay := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-05-01", DayBucket(crossMidnightStart))
	require.NotEqual(t, DayBucket(crossMidnightStart), DayBucket(nextDay))
}

func TestCloseAux(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		now     time.Time
		auxType domain.AuxType
		want    AuxClosure
	}{
		{
			name:    "午餐超过一小时要标记超时",
			start:   date(12, 0),
			now:     date(13, 10),
			auxType: domain.AuxLunch,
			want:    AuxClosure{DurationSeconds: 4200, OverLimit: true},
		},
		{
			name:    "小休在上限内不标记",
			start:   date(10, 0),
			now:     date(10, 14),
			auxType: domain.AuxBreak,
			want:    AuxClosure{DurationSeconds: 14 * 60},
		},
		{
			name:    "刚好到达上限不算超时",
			start:   date(10, 0),
			now:     date(10, 15),
			auxType: domain.AuxBreak,
			want:    AuxClosure{DurationSeconds: 15 * 60},
		},
		{
			name:    "没有上限的类型不管多久都不标记",
			start:   date(9, 0),
			now:     date(15, 0),
			auxType: domain.AuxTraining,
			want:    AuxClosure{DurationSeconds: 6 * 3600},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultLimits.CloseAux(tt.now, tt.start, tt.auxType)
			assert.Equal(t, tt.want, got)
		})
	}
}
