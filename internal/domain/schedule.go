package domain

import "time"

type DayType string

const (
	DayWork    DayType = "work"
	DayOff     DayType = "off"
	DayHoliday DayType = "holiday"
)

type Schedule struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userID"`
	Date       time.Time  `json:"date"`
	ShiftStart *time.Time `json:"shiftStart"` // 休息日没有班次时间
	ShiftEnd   *time.Time `json:"shiftEnd"`
	DayType    DayType    `json:"dayType"`
	CreatedAt  time.Time  `json:"createdAt"`
	Version    int32      `json:"-"`
}