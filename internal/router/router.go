package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"venuebook/internal/domain"
	"venuebook/internal/metrics"
	"venuebook/internal/middleware"
	"venuebook/internal/modules/analytics"
	"venuebook/internal/modules/auth"
	"venuebook/internal/modules/booking"
	"venuebook/internal/modules/health"
	"venuebook/internal/modules/realtime"
	"venuebook/internal/modules/venue"
	"venuebook/internal/pkg/jwt"
	"venuebook/internal/pkg/validator"
	"venuebook/internal/repository"
)

// Deps is everything the HTTP layer needs from the process.
type Deps struct {
	DB             *gorm.DB
	Log            *logrus.Logger
	Tokens         *jwt.Service
	Hub            *realtime.Hub
	Auth           auth.Options
	AllowedOrigins []string
	// AuthLimiter throttles /api/auth; nil disables it.
	AuthLimiter *middleware.RateLimiter
	// Now drives analytics windows; nil means time.Now.
	Now func() time.Time
}

func New(d Deps) (*gin.Engine, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	validator.RegisterWithGin()
	if d.Hub == nil {
		d.Hub = realtime.NewHub(d.Log)
	}

	userRepo := repository.NewUserRepository(d.DB)
	venueRepo := repository.NewVenueRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.Tokens, d.Auth, d.Log), d.Log)
	venueHandler := venue.NewHandler(venue.NewService(venueRepo, bookingRepo, d.Hub, d.Log), d.Log)
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, venueRepo, d.Hub, d.Log), d.Log)
	analyticsHandler := analytics.NewHandler(analytics.NewService(bookingRepo, venueRepo, d.Now, d.Log), d.Log)
	realtimeHandler := realtime.NewHandler(d.Hub, d.Tokens, d.AllowedOrigins, d.Log)
	healthHandler := health.NewHandler(sqlDB, d.Log)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		metrics.Instrument(),
		middleware.CORS(d.AllowedOrigins),
	)

	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		var authMW []gin.HandlerFunc
		if d.AuthLimiter != nil {
			authMW = append(authMW, d.AuthLimiter.Handler())
		}
		authHandler.RegisterRoutes(api, authMW...)
		venueHandler.RegisterPublicRoutes(api)
		realtimeHandler.RegisterRoutes(api)

		protected := api.Group("",
			middleware.JWTAuth(d.Tokens),
			middleware.RequireRole(domain.RoleUser, domain.RoleAdmin),
		)
		bookingHandler.RegisterRoutes(protected)

		admin := protected.Group("", middleware.AdminOnly())
		venueHandler.RegisterAdminRoutes(admin)
		analyticsHandler.RegisterRoutes(admin)
	}

	return r, nil
}
