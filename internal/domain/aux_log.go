package domain

import "time"

type AuxType string

const (
	AuxBreak          AuxType = "break"
	AuxLunch          AuxType = "lunch"
	AuxLastBreak      AuxType = "last_break"
	AuxMeeting        AuxType = "meeting"
	AuxCoaching       AuxType = "coaching"
	AuxTraining       AuxType = "training"
	AuxTechnicalIssue AuxType = "technical_issue"
	AuxFloorSupport   AuxType = "floor_support"
	AuxAvailable      AuxType = "available"
)

type AuxLog struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userID"`
	AuxType         AuxType    `json:"auxType"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime"` // 为空表示该状态还在进行中
	DurationSeconds *int64     `json:"durationSeconds"`
	OverLimit       bool       `json:"overLimit"`
	CreatedAt       time.Time  `json:"createdAt"`
}
