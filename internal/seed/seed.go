package seed

import (
	"log/slog"
	"time"

	"github.com/konecta-dev/wfm/backend/internal/config"
	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/repository"
	"github.com/konecta-dev/wfm/backend/internal/utils"
)

// SeedDemoTeam 构造一个可以直接登录演示的团队：
// 一名经理、若干名客服，以及未来两周的排班
func SeedDemoTeam(r *repository.Repository, cfg *config.Config, agentCount int) {
	manager, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
	if err != nil {
		slog.Error("无法生成经理", "error", err)
		return
	}
	manager.Role = domain.RoleManager

	if err := r.CreateUser(manager); err != nil {
		slog.Error("无法插入经理", "error", err)
		return
	}
	slog.Info("经理创建成功", "email", manager.Email)

	agents := make([]*domain.User, 0, agentCount)
	for i := 0; i < agentCount; i++ {
		agent, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成客服", "error", err)
			continue
		}
		agent.ManagerID = &manager.ID

		if err := r.CreateUser(agent); err != nil {
			slog.Error("无法插入客服", "error", err)
			continue
		}

		agents = append(agents, agent)
	}
	slog.Info("客服创建成功", "count", len(agents))

	// 未来两周的排班：周一到周五 09:00-17:00 上班，周末休息
	today := time.Now().UTC().Truncate(24 * time.Hour)
	scheduled := 0
	for _, agent := range agents {
		for day := 0; day < 14; day++ {
			date := today.AddDate(0, 0, day)

			schedule := &domain.Schedule{
				UserID:  agent.ID,
				Date:    date,
				DayType: domain.DayOff,
			}

			if date.Weekday() != time.Saturday && date.Weekday() != time.Sunday {
				shiftStart := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
				shiftEnd := time.Date(date.Year(), date.Month(), date.Day(), 17, 0, 0, 0, time.UTC)
				schedule.DayType = domain.DayWork
				schedule.ShiftStart = &shiftStart
				schedule.ShiftEnd = &shiftEnd
			}

			if err := r.UpsertSchedule(schedule); err != nil {
				slog.Error("无法插入排班", "error", err)
				continue
			}
			scheduled++
		}
	}
	slog.Info("排班创建成功", "count", scheduled)

	announcement := &domain.Announcement{
		Title:     "欢迎使用 Konecta WFM",
		Body:      "上班记得打卡，休息请切换 AUX 状态。",
		CreatedBy: manager.ID,
	}
	if err := r.CreateAnnouncement(announcement); err != nil {
		slog.Error("无法插入公告", "error", err)
		return
	}
	slog.Info("公告创建成功", "id", announcement.ID)

	holiday := &domain.Holiday{
		Date: today.AddDate(0, 0, 30),
		Name: "公司周年庆",
	}
	if err := r.CreateHoliday(holiday); err != nil {
		slog.Error("无法插入节假日", "error", err)
		return
	}
	slog.Info("节假日创建成功", "id", holiday.ID)
}
