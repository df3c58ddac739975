package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/middleware"
	"venuebook/internal/modules/auth"
	"venuebook/internal/modules/realtime"
	"venuebook/internal/pkg/jwt"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/repository"
	"venuebook/internal/router"
)

const limiterIdle = 10 * time.Minute

type App struct {
	cfg        *config.Config
	log        *logrus.Logger
	db         *gorm.DB
	hub        *realtime.Hub
	limiter    *middleware.RateLimiter
	httpServer *http.Server
}

func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.New(cfg.LogLevel, cfg.LogFormat),
	}
	gin.SetMode(cfg.GinMode)

	if err := a.initDB(); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := a.initServer(); err != nil {
		return nil, fmt.Errorf("init server: %w", err)
	}
	return a, nil
}

func (a *App) initDB() error {
	level := gormlogger.Warn
	if !a.cfg.IsProduction() && a.log.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}

	db, err := database.Connect(a.cfg.DatabaseURL, a.log, level)
	if err != nil {
		return err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.db = db
	return nil
}

func (a *App) initServer() error {
	a.hub = realtime.NewHub(a.log)
	a.limiter = middleware.NewRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst, a.log)

	r, err := router.New(router.Deps{
		DB:     a.db,
		Log:    a.log,
		Tokens: jwt.New(a.cfg.JWTSecret),
		Hub:    a.hub,
		Auth: auth.Options{
			RegisterTTL:            a.cfg.RegisterTokenTTL,
			LoginTTL:               a.cfg.LoginTokenTTL,
			AllowAdminRegistration: a.cfg.AllowAdminRegistration,
		},
		AllowedOrigins: a.cfg.AllowedOrigins(),
		AuthLimiter:    a.limiter,
	})
	if err != nil {
		return err
	}

	a.httpServer = &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      r,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}
	return nil
}

// Run serves until SIGINT/SIGTERM and then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanupStop := make(chan struct{})
	defer close(cleanupStop)
	a.limiter.StartCleanup(limiterIdle, cleanupStop)

	errCh := make(chan error, 1)
	go func() {
		a.log.WithFields(logrus.Fields{"addr": a.httpServer.Addr, "env": a.cfg.AppEnv}).Info("HTTP server starting")
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("HTTP server stopped")

	// websocket connections are hijacked and not covered by Shutdown
	a.hub.Close()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
	}
	a.log.Info("app stopped")
	return nil
}
