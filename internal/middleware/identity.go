package middleware

// identity.go holds the context plumbing shared across middleware and
// handlers: where the verified identity lives and how to read it back.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/auth"
)

const identityKey = "identity"

// IdentityFrom returns the identity JWTAuth stored for this request.
// The second return is false on routes that never passed through
// JWTAuth.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey).(auth.Identity)
	return id, ok
}

// ActorName names the caller for audit records. It returns "anonymous"
// when no identity is present or the token carried an empty subject.
func ActorName(c echo.Context) string {
	id, ok := IdentityFrom(c)
	if !ok || id.Name == "" {
		return "anonymous"
	}
	return id.Name
}
