package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/time-tracker-api/internal/config"
	"github.com/iliyamo/time-tracker-api/internal/database"
	"github.com/iliyamo/time-tracker-api/internal/handler"
	"github.com/iliyamo/time-tracker-api/internal/logger"
	"github.com/iliyamo/time-tracker-api/internal/middleware"
	"github.com/iliyamo/time-tracker-api/internal/problem"
	"github.com/iliyamo/time-tracker-api/internal/queue"
	"github.com/iliyamo/time-tracker-api/internal/router"
)

func main() {
	// .env is for local development; in real deployments the variables
	// come from the environment and the file simply does not exist.
	_ = godotenv.Load()

	cfg := config.Load()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()
	auditCfg := config.LoadAuditConfig()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, responses will not be cached")
	} else {
		defer rdb.Close()
	}

	var limiter *middleware.AccessLimiter
	if rlCfg.Enabled {
		limiter = middleware.NewAccessLimiter(rlCfg)
		limiter.StartSweep(ctx, rlCfg.SweepInterval)
	}

	var auditor handler.Auditor
	if auditCfg.Enabled {
		auditor = queue.NewPublisher(auditCfg, log)
		go queue.StartConsumer(ctx, auditCfg, log)
	}

	metrics := middleware.NewMetrics("timetracker")

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = problem.ErrorHandler(log, cfg.Dev())
	e.Use(echomw.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger(log))

	router.Register(e, router.Deps{
		DB:      db,
		Redis:   rdb,
		Limiter: limiter,
		Metrics: metrics,
		Audit:   auditor,
		Cfg:     cfg,
		Cache:   cacheCfg,
	})

	go func() {
		log.Info("listening",
			zap.String("addr", ":"+cfg.Port),
			zap.String("env", cfg.Env),
			zap.Bool("rate_limit", rlCfg.Enabled),
			zap.Bool("cache", cacheCfg.Enabled && rdb != nil),
			zap.Bool("audit", auditCfg.Enabled),
		)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
