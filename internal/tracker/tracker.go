package tracker

import (
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
)

// Limits 是各类 AUX 状态的时长上限，从配置中传入而不是读全局变量
type Limits struct {
	BreakLimitMinutes int
	LunchLimitMinutes int
}

// 返回某类 AUX 状态的时长上限，返回 0 表示该类状态没有上限
func (l Limits) LimitFor(auxType domain.AuxType) time.Duration {
	switch auxType {
	case domain.AuxBreak, domain.AuxLastBreak:
		return time.Duration(l.BreakLimitMinutes) * time.Minute
	case domain.AuxLunch:
		return time.Duration(l.LunchLimitMinutes) * time.Minute
	default:
		return 0
	}
}

// break、lunch 和 last_break 每人每天只能使用一次，按开始时间所在日期计算
func OncePerDay(auxType domain.AuxType) bool {
	switch auxType {
	case domain.AuxBreak, domain.AuxLunch, domain.AuxLastBreak:
		return true
	default:
		return false
	}
}

// DayBucket 是每日一次判定所用的日期桶：按 UTC 日期分桶，
// 与 SQL 里 start_time::date 的比较保持同一口径
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// 跨越午夜的状态只计入开始那一天，结束时间不影响分桶
func SameStartDate(a, b time.Time) bool {
	return DayBucket(a) == DayBucket(b)
}

// 所有时长都按整秒计算，时间倒流时按 0 处理
func ElapsedSeconds(from, to time.Time) int64 {
	seconds := int64(to.Sub(from) / time.Second)
	if seconds < 0 {
		return 0
	}
	return seconds
}

func IsLate(now time.Time, shiftStart *time.Time) bool {
	return shiftStart != nil && now.After(*shiftStart)
}

type AttendanceClosure struct {
	WorkedSeconds   int64
	OvertimeSeconds int64
	IsEarlyLogout   bool
}

// CloseAttendance 计算下班打卡时的工时、加班时长和早退标记。
// 没有排班时不做任何判定，加班时长以排班结束时间减去上班打卡时间为基准。
func CloseAttendance(now time.Time, clockIn time.Time, shiftEnd *time.Time) AttendanceClosure {
	closure := AttendanceClosure{
		WorkedSeconds: ElapsedSeconds(clockIn, now),
	}

	if shiftEnd == nil {
		return closure
	}

	if now.Before(*shiftEnd) {
		closure.IsEarlyLogout = true
		return closure
	}

	scheduledSeconds := ElapsedSeconds(clockIn, *shiftEnd)
	if overtime := closure.WorkedSeconds - scheduledSeconds; overtime > 0 {
		closure.OvertimeSeconds = overtime
	}

	return closure
}

type AuxClosure struct {
	DurationSeconds int64
	OverLimit       bool
}

// CloseAux 计算关闭一个 AUX 状态时的时长和超时标记
func (l Limits) CloseAux(now time.Time, start time.Time, auxType domain.AuxType) AuxClosure {
	closure := AuxClosure{
		DurationSeconds: ElapsedSeconds(start, now),
	}

	if limit := l.LimitFor(auxType); limit > 0 {
		closure.OverLimit = time.Duration(closure.DurationSeconds)*time.Second > limit
	}

	return closure
}
