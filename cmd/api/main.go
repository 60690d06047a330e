package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"renthub/internal/config"
	"renthub/internal/database"
	"renthub/internal/jobs"
	"renthub/internal/middleware"
	"renthub/internal/modules/auth"
	"renthub/internal/modules/booking"
	"renthub/internal/modules/catalog"
	"renthub/internal/modules/damage"
	"renthub/internal/modules/notification"
	"renthub/internal/modules/payment"
	jwtsvc "renthub/internal/pkg/jwt"
	"renthub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	damageRepo := repository.NewDamageReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub()
	dispatcher := notification.NewDispatcher(notificationRepo, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(bookingRepo, itemRepo, dispatcher, cfg.LockWait)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(itemRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, itemRepo, bookingService, cfg.PlatformFeePercent)
	paymentHandler := payment.NewHandler(paymentService)

	damageService := damage.NewService(damageRepo, bookingRepo, itemRepo)
	damageHandler := damage.NewHandler(damageService)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService, hub)

	sweeper := jobs.NewSweeper(bookingService)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		log.Fatal(err)
	}
	defer sweeper.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			damageHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
