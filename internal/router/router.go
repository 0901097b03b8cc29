// Package router mounts the HTTP surface: public probes and token
// issuing on the bare instance, the guarded CRUD API under /api and
// /api/v1.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/time-tracker-api/internal/config"
	"github.com/iliyamo/time-tracker-api/internal/handler"
	"github.com/iliyamo/time-tracker-api/internal/middleware"
	"github.com/iliyamo/time-tracker-api/internal/repository"
)

// Deps carries everything Register wires together. Redis, Limiter,
// Metrics and Audit may be nil or disabled; routes degrade to serving
// without cache, throttling, instrumentation or audit trail.
type Deps struct {
	DB      *sql.DB
	Redis   *redis.Client
	Limiter *middleware.AccessLimiter
	Metrics *middleware.Metrics
	Audit   handler.Auditor
	Cfg     config.Config
	Cache   config.CacheConfig
}

// Register mounts every route on e.
func Register(e *echo.Echo, d Deps) {
	users := repository.NewUserRepo(d.DB)
	clients := repository.NewClientRepo(d.DB)
	projects := repository.NewProjectRepo(d.DB)
	entries := repository.NewTimeEntryRepo(d.DB)

	h := apiHandlers{
		users:    handler.NewUserHandler(users, d.Audit),
		clients:  handler.NewClientHandler(clients, d.Audit),
		projects: handler.NewProjectHandler(projects, clients, d.Audit),
		entries:  handler.NewTimeEntryHandler(entries, users, projects, d.Audit),
	}
	tokens := handler.NewTokenHandler(d.Cfg.JWTSecret, d.Cfg.JWTIssuer, d.Cfg.TokenTTL)
	ready := handler.NewReadyHandler(d.DB, d.Redis)

	// ---- Public ----
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", ready.Ready)
	e.GET("/get-token", tokens.Issue)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	// Both prefixes serve the same API: /api/v1 is the documented one,
	// bare /api stays around for clients wired before versioning.
	for _, prefix := range []string{"/api", "/api/v1"} {
		g := e.Group(prefix)
		g.Use(middleware.JWTAuth(d.Cfg.JWTSecret, d.Cfg.JWTIssuer))
		if d.Limiter != nil {
			g.Use(d.Limiter.Middleware())
		}
		g.Use(middleware.ResponseCache(d.Cache, d.Redis))
		registerAPI(g, h)
	}
}
