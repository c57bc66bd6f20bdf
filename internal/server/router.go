// Package server assembles repositories, services and handlers into the HTTP router.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/config"
	"github.com/thanhlp18/homestay-booking-sub000/internal/middleware"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/admin"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/booking"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/catalog"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/payment"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/upload"
	"github.com/thanhlp18/homestay-booking-sub000/internal/notification"
	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/jwt"
	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/response"
	"github.com/thanhlp18/homestay-booking-sub000/internal/ratelimit"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

// Deps are the long-lived resources owned by main.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client // optional
	Notifier notification.Notifier
	Log      *logrus.Logger
}

// New builds the router. ctx bounds background goroutines such as the
// in-memory rate limiter cleanup.
func New(ctx context.Context, d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log
	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NoopNotifier{}
	}

	// Repositories
	branchRepo := repository.NewBranchRepository(d.DB)
	roomRepo := repository.NewRoomRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	webhookRepo := repository.NewPaymentWebhookRepository(d.DB)
	adminRepo := repository.NewAdminUserRepository(d.DB)
	uploadRepo := repository.NewUploadRepository(d.DB)

	// Services
	loc := cfg.Booking.Location
	catalogService := catalog.NewService(branchRepo, roomRepo, bookingRepo, log, loc, cfg.Booking.CheckInStepMinutes)
	bookingService := booking.NewService(bookingRepo, roomRepo, notifier, log, loc)
	paymentService := payment.NewService(webhookRepo, notifier, log, cfg.Payment.WebhookAPIKey)
	jwtService := jwt.New(cfg.JWT.Secret, cfg.JWT.TTL)
	adminService := admin.NewService(adminRepo, bookingRepo, bookingService, jwtService)
	uploadService := upload.NewService(uploadRepo, cfg.Upload.Dir, cfg.Upload.StaticBase, cfg.Upload.MaxBytes)

	// Handlers
	catalogHandler := catalog.NewHandler(catalogService, log)
	bookingHandler := booking.NewHandler(bookingService, log)
	paymentHandler := payment.NewHandler(paymentService, log)
	adminHandler := admin.NewHandler(adminService, log)
	uploadHandler := upload.NewHandler(uploadService, log)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.MaxMultipartMemory = uploadService.MaxBytes()

	r.GET("/health", health(d.DB))

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		uploadHandler.RegisterRoutes(v1, middleware.RateLimit(uploadLimiter(ctx, d.Redis, cfg.Upload), log))

		adminGroup := v1.Group("/admin")
		adminHandler.RegisterPublicRoutes(adminGroup)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(protected)
			paymentHandler.RegisterAdminRoutes(protected)
			// ID-card images are only ever shown to admins.
			protected.Static("/uploads", uploadService.BaseDir())
		}
	}

	return r
}

// uploadLimiter shares counters through Redis when available so several API
// instances enforce one budget per client IP.
func uploadLimiter(ctx context.Context, rdb *redis.Client, cfg config.UploadConfig) ratelimit.Limiter {
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb, "upload", cfg.RateLimit, cfg.RateWindow)
	}
	l := ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateWindow)
	go l.Run(ctx)
	return l
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
