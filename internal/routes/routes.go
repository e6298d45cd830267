package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/audit"
	"github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/cache"
	"github.com/Jojo-brz/saas-barbearia/internal/config"
	"github.com/Jojo-brz/saas-barbearia/internal/handlers"
	infraRepo "github.com/Jojo-brz/saas-barbearia/internal/infra/repository"
	"github.com/Jojo-brz/saas-barbearia/internal/metrics"
	"github.com/Jojo-brz/saas-barbearia/internal/middleware"
	ucBooking "github.com/Jojo-brz/saas-barbearia/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) {

	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewBookingGormRepository(db)
	engine := booking.NewController(repo, repo)
	slotsCache := cache.New(rdb, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	metrics.Register()

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlotGrid(repo, slotsCache, cfg.SlotStepMinutes)
	admitUC := ucBooking.NewAdmitBooking(repo, engine, auditDispatcher, slotsCache)
	cancelUC := ucBooking.NewCancelBooking(repo, engine, auditDispatcher, slotsCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barbershopHandler := handlers.NewBarbershopHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db, slotsCache)
	bookingHandler := handlers.NewBookingHandler(db, cancelUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, getSlotsUC, admitUC, cancelUC)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (booking page)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
			publicAPI.POST("/:slug/bookings/:id/cancel", publicHandler.CancelBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// OWNER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id", barberHandler.Update)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.POST("/me/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
