package utils

import (
	"testing"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateLeaveRequest(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		request domain.LeaveRequest
		wantErr error
	}{
		{
			name: "病假没有证明材料",
			request: domain.LeaveRequest{
				Type:      domain.LeaveSick,
				StartDate: start,
				EndDate:   end,
			},
			wantErr: domain.ErrMissingDocument,
		},
		{
			name: "病假带证明材料",
			request: domain.LeaveRequest{
				Type:      domain.LeaveSick,
				StartDate: start,
				EndDate:   end,
				FileURL:   strPtr("/uploads/sick-note.pdf"),
			},
		},
		{
			name: "加班申请缺少起止时间",
			request: domain.LeaveRequest{
				Type:      domain.LeaveOvertime,
				StartDate: start,
				EndDate:   start,
				StartTime: strPtr("18:00"),
			},
			wantErr: domain.ErrMissingOvertimeWindow,
		},
		{
			name: "加班申请起止时间齐全",
			request: domain.LeaveRequest{
				Type:      domain.LeaveOvertime,
				StartDate: start,
				EndDate:   start,
				StartTime: strPtr("18:00"),
				EndTime:   strPtr("20:00"),
			},
		},
		{
			name: "年假不需要附加材料",
			request: domain.LeaveRequest{
				Type:      domain.LeaveAnnual,
				StartDate: start,
				EndDate:   end,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLeaveRequest(&tt.request)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLeaveRequestDateOrder(t *testing.T) {
	lr := domain.LeaveRequest{
		Type:      domain.LeaveAnnual,
		StartDate: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.Error(t, ValidateLeaveRequest(&lr))
}

func TestValidateLeaveRequestOvertimeClockFormat(t *testing.T) {
	lr := domain.LeaveRequest{
		Type:      domain.LeaveOvertime,
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		StartTime: strPtr("25:99"),
		EndTime:   strPtr("20:00"),
	}
	require.Error(t, ValidateLeaveRequest(&lr))
}

func TestValidateShiftSwapProposal(t *testing.T) {
	assert.ErrorIs(t, ValidateShiftSwapProposal(7, 7), domain.ErrSelfSwap)
	assert.NoError(t, ValidateShiftSwapProposal(7, 8))
}

func TestValidateScheduleShiftWindow(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateScheduleShiftWindow(nil, nil))
	assert.NoError(t, ValidateScheduleShiftWindow(&start, &end))
	assert.Error(t, ValidateScheduleShiftWindow(&start, nil))
	assert.Error(t, ValidateScheduleShiftWindow(&end, &start))
}
