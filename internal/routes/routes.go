package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/audit"
	"github.com/bookitlabs/bookit-server/internal/auth"
	"github.com/bookitlabs/bookit-server/internal/config"
	"github.com/bookitlabs/bookit-server/internal/handlers"
	infraRepo "github.com/bookitlabs/bookit-server/internal/infra/repository"
	"github.com/bookitlabs/bookit-server/internal/media"
	"github.com/bookitlabs/bookit-server/internal/middleware"
	"github.com/bookitlabs/bookit-server/internal/payments"
	"github.com/bookitlabs/bookit-server/internal/ratelimit"
	ucBooking "github.com/bookitlabs/bookit-server/internal/usecase/booking"
	"github.com/bookitlabs/bookit-server/internal/wizard"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	wizardManager := wizard.NewManager(wizard.NewRedisStore(rdb))
	loginLimiter := ratelimit.NewLoginLimiter(ratelimit.NewRedisCounterStore(rdb))

	authService := auth.NewService(db, cfg)
	uploader := media.NewUploader(cfg)

	var gateway payments.Gateway = payments.Disabled{}
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			logrus.WithError(err).Warn("payment gateway disabled: bad credentials")
		} else {
			gateway = mp
		}
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		gateway,
		auditDispatcher,
	)

	transitionBookingUC := ucBooking.NewTransitionBooking(
		bookingRepo,
		auditDispatcher,
	)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	wizardHandler := handlers.NewWizardHandler(wizardManager)

	publicHandler := handlers.NewPublicHandler(
		db,
		wizardManager,
		wizardHandler,
		availabilityUC,
		createBookingUC,
	)

	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	photoHandler := handlers.NewPhotoHandler(db, uploader)

	bookingHandler := handlers.NewBookingHandler(
		transitionBookingUC,
		listBookingsUC,
	)

	serviceAdminHandler := handlers.NewServiceAdminHandler(db)
	staffAdminHandler := handlers.NewStaffAdminHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// PUBLIC BOOKING SURFACE
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/staff", staffAdminHandler.ListStaffForService)
		api.GET("/availability", publicHandler.Availability)

		wizardAPI := api.Group("/wizard")
		{
			wizardAPI.GET("/session", wizardHandler.GetSession)
			wizardAPI.POST("/session", wizardHandler.UpdateSession)
		}

		api.POST("/service/select", publicHandler.SelectService)

		api.POST("/bookings", publicHandler.CreateBooking)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login",
			middleware.LoginRateLimit(loginLimiter),
			authHandler.Login,
		)

		// ------------------------------
		// DASHBOARD (PRIVATE)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/photo", photoHandler.Upload)

			secured.GET("/me/customers", customerHandler.List)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/no-show", bookingHandler.MarkNoShow)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/services", serviceAdminHandler.List)
				admin.POST("/services", serviceAdminHandler.Create)
				admin.PATCH("/services/:id", serviceAdminHandler.Update)
				admin.DELETE("/services/:id", serviceAdminHandler.Delete)
				admin.POST("/categories", serviceAdminHandler.CreateCategory)

				admin.GET("/staff", staffAdminHandler.List)
				admin.POST("/staff", staffAdminHandler.Create)
				admin.PATCH("/staff/:id", staffAdminHandler.Update)
				admin.DELETE("/staff/:id", staffAdminHandler.Delete)
				admin.POST("/staff/:id/services", staffAdminHandler.AssignService)

				admin.GET("/settings", settingsHandler.Get)
				admin.PUT("/settings", settingsHandler.Update)

				admin.GET("/payments", paymentHandler.List)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
