package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/middleware"
)

// parseID reads the :id route parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// locationFor is the Location header value for a freshly created row.
func locationFor(c echo.Context, id uint64) string {
	return c.Request().URL.Path + "/" + strconv.FormatUint(id, 10)
}

// audit records a successful mutation when an auditor is wired.
func audit(c echo.Context, a Auditor, entity, action string, id uint64) {
	if a == nil {
		return
	}
	a.Record(c.Request().Context(), entity, action, id, middleware.ActorName(c))
}
