package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/utils"
)

// 解析查询参数中的日期区间，缺省时返回今天开始的一周
func parseScheduleRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		t, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from 参数格式错误，应为 2006-01-02")
		}
		from = t
	}

	if toParam := r.URL.Query().Get("to"); toParam != "" {
		t, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to 参数格式错误，应为 2006-01-02")
		}
		to = t
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to 不能早于 from")
	}

	return from, to, nil
}

func (h *Handler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseScheduleRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedules, err := h.repository.GetSchedulesByUser(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班成功", schedules)
}

func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseScheduleRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedules, err := h.repository.GetTeamSchedules(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取团队排班成功", schedules)
}

func (h *Handler) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int64   `json:"userId" validate:"required"`
		Date       string  `json:"date" validate:"required"`
		DayType    string  `json:"dayType" validate:"required,oneof=work off holiday"`
		ShiftStart *string `json:"shiftStart"` // 格式 15:04
		ShiftEnd   *string `json:"shiftEnd"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := buildSchedule(req.UserID, req.Date, req.DayType, req.ShiftStart, req.ShiftEnd)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpsertSchedule(schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排班保存成功", schedule)
}

// 从 CSV 文件批量导入排班，列依次为 userId, date, dayType, shiftStart, shiftEnd
func (h *Handler) ImportSchedules(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		h.badRequest(w, r, errors.New("请上传排班 CSV 文件"))
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 5

	// 跳过表头
	if _, err := reader.Read(); err != nil {
		h.badRequest(w, r, errors.New("CSV 文件为空"))
		return
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.badRequest(w, r, fmt.Errorf("第 %d 行格式错误", line))
			return
		}

		userID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			h.badRequest(w, r, fmt.Errorf("第 %d 行的 userId 无效", line))
			return
		}

		var shiftStart, shiftEnd *string
		if record[3] != "" {
			shiftStart = &record[3]
		}
		if record[4] != "" {
			shiftEnd = &record[4]
		}

		schedule, err := buildSchedule(userID, record[1], record[2], shiftStart, shiftEnd)
		if err != nil {
			h.badRequest(w, r, fmt.Errorf("第 %d 行：%s", line, err.Error()))
			return
		}

		if err := h.repository.UpsertSchedule(schedule); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		imported++
	}

	h.successResponse(w, r, fmt.Sprintf("成功导入 %d 条排班", imported), nil)
}

func buildSchedule(userID int64, dateStr string, dayType string, shiftStartStr *string, shiftEndStr *string) (*domain.Schedule, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, errors.New("date 格式错误，应为 2006-01-02")
	}

	switch domain.DayType(dayType) {
	case domain.DayWork, domain.DayOff, domain.DayHoliday:
	default:
		return nil, errors.New("dayType 无效，应为 work、off 或 holiday")
	}

	parseClock := func(s string) (*time.Time, error) {
		clock, err := time.Parse("15:04", s)
		if err != nil {
			return nil, errors.New("班次时间格式错误，应为 15:04")
		}
		t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		return &t, nil
	}

	var shiftStart, shiftEnd *time.Time
	if shiftStartStr != nil {
		if shiftStart, err = parseClock(*shiftStartStr); err != nil {
			return nil, err
		}
	}
	if shiftEndStr != nil {
		if shiftEnd, err = parseClock(*shiftEndStr); err != nil {
			return nil, err
		}
	}

	if domain.DayType(dayType) == domain.DayWork && shiftStart == nil {
		return nil, errors.New("工作日必须提供班次时间")
	}

	if err := utils.ValidateScheduleShiftWindow(shiftStart, shiftEnd); err != nil {
		return nil, err
	}

	return &domain.Schedule{
		UserID:     userID,
		Date:       date,
		ShiftStart: shiftStart,
		ShiftEnd:   shiftEnd,
		DayType:    domain.DayType(dayType),
	}, nil
}
