package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestBuildSchedule(t *testing.T) {
	tests := []struct {
		name       string
		dayType    string
		shiftStart *string
		shiftEnd   *string
		wantErr    bool
	}{
		{
			name:       "工作日带班次时间",
			dayType:    "work",
			shiftStart: strPtr("09:00"),
			shiftEnd:   strPtr("17:00"),
		},
		{
			name:    "休息日没有班次时间",
			dayType: "off",
		},
		{
			name:    "工作日缺少班次时间",
			dayType: "work",
			wantErr: true,
		},
		{
			name:       "班次结束早于开始",
			dayType:    "work",
			shiftStart: strPtr("17:00"),
			shiftEnd:   strPtr("09:00"),
			wantErr:    true,
		},
		{
			name:       "班次时间格式错误",
			dayType:    "work",
			shiftStart: strPtr("9 am"),
			shiftEnd:   strPtr("17:00"),
			wantErr:    true,
		},
		{
			name:    "dayType 非法",
			dayType: "weekend",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := buildSchedule(1, "2024-05-06", tt.dayType, tt.shiftStart, tt.shiftEnd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), schedule.UserID)
			assert.Equal(t, domain.DayType(tt.dayType), schedule.DayType)
			assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), schedule.Date)

			if tt.shiftStart != nil {
				require.NotNil(t, schedule.ShiftStart)
				assert.Equal(t, 9, schedule.ShiftStart.Hour())
				require.NotNil(t, schedule.ShiftEnd)
				assert.Equal(t, 17, schedule.ShiftEnd.Hour())
			} else {
				assert.Nil(t, schedule.ShiftStart)
				assert.Nil(t, schedule.ShiftEnd)
			}
		})
	}
}

func TestBuildScheduleBadDate(t *testing.T) {
	_, err := buildSchedule(1, "06/05/2024", "off", nil, nil)
	require.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/attendance/me?from=2024-05-01&to=2024-05-31", nil)
	from, to, err := parseDateRange(r)
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), *to)

	// 区间参数是可选的
	r = httptest.NewRequest("GET", "/attendance/me", nil)
	from, to, err = parseDateRange(r)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	// to 不能早于 from
	r = httptest.NewRequest("GET", "/attendance/me?from=2024-05-31&to=2024-05-01", nil)
	_, _, err = parseDateRange(r)
	assert.Error(t, err)

	r = httptest.NewRequest("GET", "/attendance/me?from=bad", nil)
	_, _, err = parseDateRange(r)
	assert.Error(t, err)
}

func TestParseReportRange(t *testing.T) {
	// 报表区间必须显式指定
	r := httptest.NewRequest("GET", "/reports/attendance", nil)
	_, _, err := parseReportRange(r)
	assert.Error(t, err)

	r = httptest.NewRequest("GET", "/reports/attendance?from=2024-05-01&to=2024-05-31", nil)
	from, to, err := parseReportRange(r)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), to)
}
