package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/konecta-dev/wfm/backend/internal/config"
	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/konecta-dev/wfm/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

// 把邮件投递到消息队列中，由 cmd/mail 的 worker 负责真正发送
func (h *Handler) publishMailMessage(msg domain.MailMessage) error {
	mailData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 发起换班时需要按姓名选同事，因此所有人都能看用户列表
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/team", h.GetMyTeam)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.With(h.preventInactive).Post("/clock-in", h.ClockIn)
			r.With(h.preventInactive).Post("/clock-out", h.ClockOut)
			r.Get("/me", h.GetMyAttendanceHistory)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/team", h.GetTeamAttendance)
		})

		r.Route("/aux", func(r chi.Router) {
			r.With(h.preventInactive).Post("/start", h.StartAux)
			r.With(h.preventInactive).Post("/end", h.EndAux)
			r.Get("/me", h.GetMyAuxHistory)
		})

		r.Route("/leave", func(r chi.Router) {
			r.With(h.preventInactive).With(h.RequiredRole([]domain.Role{domain.RoleAgent})).Post("/", h.SubmitLeaveRequest)
			r.Get("/me", h.GetMyLeaveRequests)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/pending", h.GetPendingLeaveRequests)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/{id}/approve", h.ApproveLeaveRequest)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/{id}/reject", h.RejectLeaveRequest)
		})

		r.Route("/shift-swaps", func(r chi.Router) {
			r.With(h.preventInactive).With(h.RequiredRole([]domain.Role{domain.RoleAgent})).Post("/", h.ProposeShiftSwap)
			r.Get("/me", h.GetMyShiftSwaps)
			r.With(h.preventInactive).With(h.RequiredRole([]domain.Role{domain.RoleAgent})).Post("/{id}/respond", h.RespondToShiftSwap)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/pending", h.GetPendingShiftSwaps)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/{id}/approve", h.ApproveShiftSwap)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/{id}/reject", h.RejectShiftSwap)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/me", h.GetMySchedule)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/team", h.GetTeamSchedule)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/", h.UpsertSchedule)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/import", h.ImportSchedules)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/me", h.GetMyNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
			r.Post("/read-all", h.MarkAllNotificationsRead)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.GetAllDepartments) // 创建用户时需要按名称选部门，因此所有人都能看部门列表
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateDepartment)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/{id}", h.UpdateDepartment)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{id}", h.DeleteDepartment)
		})

		r.With(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin})).Get("/wallboard", h.GetWallboard)

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", h.GetAllAnnouncements)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateAnnouncement)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{id}", h.DeleteAnnouncement)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.GetAllHolidays)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateHoliday)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{id}", h.DeleteHoliday)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleAdmin}))
			r.Get("/attendance", h.GetAttendanceSummary)
			r.Get("/attendance.csv", h.ExportAttendanceSummaryCSV)
			r.Get("/attendance.pdf", h.ExportAttendanceSummaryPDF)
		})
	})
}
