package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/felipepalage/agorahora-api/internal/audit"
	"github.com/felipepalage/agorahora-api/internal/cache"
	"github.com/felipepalage/agorahora-api/internal/config"
	"github.com/felipepalage/agorahora-api/internal/handlers"
	infraRepo "github.com/felipepalage/agorahora-api/internal/infra/repository"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/storage"
	ucAppointment "github.com/felipepalage/agorahora-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	listCache := cache.New(cfg)
	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	getAppointmentUC := ucAppointment.NewGetAppointment(
		appointmentRepo,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listByProfessionalUC := ucAppointment.NewListByProfessional(
		appointmentRepo,
	)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	establishmentHandler := handlers.NewEstablishmentHandler(db, listCache, uploader)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	specialtyHandler := handlers.NewSpecialtyHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		getAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listByProfessionalUC,
		getAvailabilityUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register-owner", authHandler.RegisterOwner)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PÚBLICA (app do cliente)
		// ------------------------------
		api.GET("/establishments", establishmentHandler.List)
		api.GET("/establishments/:id", establishmentHandler.Get)
		api.GET("/establishments/:id/services", serviceHandler.List)
		api.GET("/establishments/:id/availability", appointmentHandler.Availability)

		api.GET("/services/:id", serviceHandler.Get)

		api.GET("/specialties", specialtyHandler.List)

		api.POST("/clients/ensure", clientHandler.Ensure)

		api.POST("/appointments", appointmentHandler.Create)
		api.DELETE("/appointments/:id", appointmentHandler.PublicCancel)

		// ------------------------------
		// API PRIVADA (painel do estabelecimento)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/establishments", establishmentHandler.Create)
			secured.PUT("/establishments/:id", establishmentHandler.Update)
			secured.PATCH("/establishments/:id/rating", establishmentHandler.UpdateRating)
			secured.DELETE("/establishments/:id", establishmentHandler.Delete)
			secured.POST("/establishments/:id/logo", establishmentHandler.UploadLogo)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)

			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals", professionalHandler.Create)
			secured.PUT("/professionals/:id", professionalHandler.Update)
			secured.PUT("/professionals/:id/specialties", professionalHandler.SetSpecialties)

			secured.POST("/specialties", specialtyHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.ListByProfessional)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/settings", settingsHandler.Get)
			secured.PUT("/me/settings", settingsHandler.Update)

			secured.GET("/reports/summary", reportHandler.Summary)
			secured.GET("/reports/professional", reportHandler.ByProfessional)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
