package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/konecta-dev/wfm/backend/internal/domain"
)

// 报表区间必须显式指定，避免无意间全表扫描
func parseReportRange(r *http.Request) (time.Time, time.Time, error) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")
	if fromParam == "" || toParam == "" {
		return time.Time{}, time.Time{}, errors.New("必须提供 from 和 to 参数，格式为 2006-01-02")
	}

	from, err := time.Parse("2006-01-02", fromParam)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from 参数格式错误，应为 2006-01-02")
	}

	to, err := time.Parse("2006-01-02", toParam)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to 参数格式错误，应为 2006-01-02")
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to 不能早于 from")
	}

	return from, to, nil
}

// 经理只能看自己团队的汇总，管理员可以看全员
func (h *Handler) reportScope(r *http.Request) *int64 {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	if myInfo.Role == domain.RoleManager {
		return &myInfo.ID
	}
	return nil
}

func (h *Handler) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseReportRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.repository.GetAttendanceSummary(from, to, h.reportScope(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取考勤汇总成功", rows)
}

func (h *Handler) ExportAttendanceSummaryCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseReportRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.repository.GetAttendanceSummary(from, to, h.reportScope(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance_%s_%s.csv"`, from.Format("2006-01-02"), to.Format("2006-01-02")))

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"userId", "fullName", "email", "daysWorked", "workedHours", "lateCount", "earlyLogoutCount", "overtimeHours"}); err != nil {
		h.logServerError(r, err)
		return
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.UserID, 10),
			row.FullName,
			row.Email,
			strconv.FormatInt(row.DaysWorked, 10),
			fmt.Sprintf("%.2f", float64(row.WorkedSeconds)/3600),
			strconv.FormatInt(row.LateCount, 10),
			strconv.FormatInt(row.EarlyLogoutCount, 10),
			fmt.Sprintf("%.2f", float64(row.OvertimeSeconds)/3600),
		}
		if err := writer.Write(record); err != nil {
			h.logServerError(r, err)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logServerError(r, err)
	}
}

func (h *Handler) ExportAttendanceSummaryPDF(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseReportRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.repository.GetAttendanceSummary(from, to, h.reportScope(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
	pdf.Ln(10)

	// 表头
	widths := []float64{60, 70, 25, 30, 20, 25, 30}
	headers := []string{"Name", "Email", "Days", "Worked (h)", "Late", "Early out", "Overtime (h)"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		cells := []string{
			row.FullName,
			row.Email,
			strconv.FormatInt(row.DaysWorked, 10),
			fmt.Sprintf("%.2f", float64(row.WorkedSeconds)/3600),
			strconv.FormatInt(row.LateCount, 10),
			strconv.FormatInt(row.EarlyLogoutCount, 10),
			fmt.Sprintf("%.2f", float64(row.OvertimeSeconds)/3600),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance_%s_%s.pdf"`, from.Format("2006-01-02"), to.Format("2006-01-02")))

	if err := pdf.Output(w); err != nil {
		h.logServerError(r, err)
	}
}
