// Package problem renders failures as RFC 7807 problem-details
// bodies. Handlers answer expected conditions (missing rows, bad
// input) themselves; everything that escapes a handler lands in
// ErrorHandler, the single boundary that turns it into a response.
package problem

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Problem is the wire shape of a failed request.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// New builds a Problem for status. Title should be short and stable;
// detail may vary per occurrence.
func New(status int, title, detail, instance string) Problem {
	return Problem{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// Validation is a 400 Problem carrying per-field messages keyed by the
// JSON field name.
type Validation struct {
	Problem
	Errors map[string][]string `json:"errors"`
}

// NewValidation wraps field errors in a 400 problem body.
func NewValidation(errs map[string][]string, instance string) Validation {
	return Validation{
		Problem: New(http.StatusBadRequest, "Validation failed",
			"One or more fields failed validation.", instance),
		Errors: errs,
	}
}

const opaqueDetail = "An unexpected error occurred."

// ErrorHandler converts every error that reaches echo into a problem
// body. Server faults are logged and, unless verbose is set for local
// development, answered without internals in the detail field.
func ErrorHandler(log *zap.Logger, verbose bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		detail := opaqueDetail
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				detail = m
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
			detail = opaqueDetail
			if verbose {
				detail = err.Error()
			}
		}

		p := New(status, http.StatusText(status), detail, c.Request().URL.Path)
		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(status); err != nil {
				log.Error("write error response", zap.Error(err))
			}
			return
		}
		if err := c.JSON(status, p); err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}
