// Package middleware contains the request gate the API routes pass
// through: bearer token validation, the per-token access limiter, the
// admin check for mutating routes, response caching and the ambient
// request instrumentation. Order matters and is fixed by the router:
// a request is authenticated first, rate limited second and only then
// allowed near a handler.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/auth"
)

// JWTAuth returns middleware that validates the Bearer access token
// and injects the verified identity into the request context. The
// secret and issuer must match the ones used when issuing tokens.
// Handlers and downstream middleware read the result via IdentityFrom.
func JWTAuth(secret, issuer string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrMissingToken.Error()})
			}
			ident, err := auth.Verify(secret, issuer, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrInvalidToken.Error()})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// bearerToken strips a case-insensitive "bearer " prefix from an
// Authorization header value. The second return is false when the
// header does not carry a bearer token at all.
func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}
