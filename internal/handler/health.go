package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Health answers liveness probes.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// ReadyHandler answers readiness probes by pinging dependencies. A
// broken database makes the instance unready; a broken Redis only
// degrades it, because the API serves fine without its cache.
type ReadyHandler struct {
	DB    *sql.DB
	Redis *redis.Client
}

func NewReadyHandler(db *sql.DB, rdb *redis.Client) *ReadyHandler {
	return &ReadyHandler{DB: db, Redis: rdb}
}

// Ready handles GET /readyz.
func (h *ReadyHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := echo.Map{}

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			checks["database"] = "unhealthy"
			status = "unready"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "disabled"
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unhealthy"
			if status == "ready" {
				status = "degraded"
			}
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "disabled"
	}

	return c.JSON(code, echo.Map{"status": status, "checks": checks})
}
