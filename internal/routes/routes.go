package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/audit"
	"github.com/AndinoServices/turnos-scheduler/internal/clock"
	"github.com/AndinoServices/turnos-scheduler/internal/config"
	"github.com/AndinoServices/turnos-scheduler/internal/handlers"
	infraRepo "github.com/AndinoServices/turnos-scheduler/internal/infra/repository"
	"github.com/AndinoServices/turnos-scheduler/internal/middleware"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
	ucScheduling "github.com/AndinoServices/turnos-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	loc := cfg.Location()
	clk := clock.System{}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailSender := notify.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPFrom)
	outbox := notify.NewOutbox(mailSender)

	// ======================================================
	// USE CASES — AGENDA
	// ======================================================
	generateSlotsUC := ucScheduling.NewGenerateSlots(
		schedulingRepo, clk, loc, cfg.LeadTime(),
	)

	bookUC := ucScheduling.NewBookAppointment(
		schedulingRepo, clk, loc, outbox, auditDispatcher,
		cfg.LeadTime(), cfg.MaxDaily, cfg.MaxWeekly,
	)

	cancelByRepresentativeUC := ucScheduling.NewCancelByRepresentative(
		schedulingRepo, clk, loc, outbox, auditDispatcher, cfg.LeadTime(),
	)

	cancelByTeacherUC := ucScheduling.NewCancelByTeacher(
		schedulingRepo, loc, outbox, auditDispatcher,
	)

	cancelByAdminUC := ucScheduling.NewCancelByAdmin(
		schedulingRepo, loc, outbox, auditDispatcher,
	)

	confirmByTeacherUC := ucScheduling.NewConfirmByTeacher(
		schedulingRepo, loc, outbox, auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	teachersHandler := handlers.NewTeachersHandler(db)
	slotsHandler := handlers.NewSlotsHandler(generateSlotsUC, loc)

	appointmentHandler := handlers.NewAppointmentHandler(
		db, bookUC, cancelByRepresentativeUC, loc,
	)

	teacherAgendaHandler := handlers.NewTeacherAgendaHandler(
		db, generateSlotsUC, confirmByTeacherUC, cancelByTeacherUC, loc,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(db, loc)
	exceptionHandler := handlers.NewExceptionHandler(db, loc)

	adminTeacherHandler := handlers.NewAdminTeacherHandler(db, cancelByAdminUC)
	holidayHandler := handlers.NewHolidayHandler(db, loc)
	reportHandler := handlers.NewReportHandler(db, loc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// catálogo de docentes + horarios disponibles
			secured.GET("/teachers", teachersHandler.ListActive)
			secured.GET("/teachers/:id/slots", slotsHandler.ListByDate)

			// ------------------------------
			// REPRESENTANTE
			// ------------------------------
			rep := secured.Group("/appointments")
			rep.Use(middleware.RequireRoles(models.RoleRepresentative))
			{
				rep.POST("", appointmentHandler.Create)
				rep.GET("", appointmentHandler.ListMine)
				rep.PATCH("/:id/cancel", appointmentHandler.Cancel)
			}

			// ------------------------------
			// DOCENTE
			// ------------------------------
			teacher := secured.Group("/teacher")
			teacher.Use(middleware.RequireRoles(models.RoleTeacher))
			{
				teacher.GET("/agenda", teacherAgendaHandler.Day)
				teacher.GET("/agenda/week", teacherAgendaHandler.Week)
				teacher.PATCH("/appointments/:id/confirm", teacherAgendaHandler.Confirm)
				teacher.PATCH("/appointments/:id/cancel", teacherAgendaHandler.Cancel)

				teacher.GET("/availability", availabilityHandler.List)
				teacher.POST("/availability", availabilityHandler.Create)
				teacher.DELETE("/availability/:id", availabilityHandler.Delete)

				teacher.GET("/exceptions", exceptionHandler.List)
				teacher.POST("/exceptions", exceptionHandler.Create)
				teacher.DELETE("/exceptions/:id", exceptionHandler.Delete)
			}

			// ------------------------------
			// ADMINISTRACIÓN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.POST("/teachers", adminTeacherHandler.CreateTeacher)
				admin.GET("/teachers", adminTeacherHandler.ListTeachers)
				admin.PATCH("/teachers/:id", adminTeacherHandler.UpdateTeacherProfile)

				admin.PATCH("/appointments/:id/cancel", adminTeacherHandler.CancelAppointment)

				admin.GET("/holidays", holidayHandler.List)
				admin.POST("/holidays", holidayHandler.Create)
				admin.DELETE("/holidays/:id", holidayHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// COORDINACIÓN (informes)
			// ------------------------------
			reports := secured.Group("/reports")
			reports.Use(middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin))
			{
				reports.GET("/summary", reportHandler.Summary)
				reports.GET("/today", reportHandler.Today)
				reports.GET("/week", reportHandler.Week)
				reports.GET("/export", reportHandler.ExportCSV)
			}
		}
	}
}
