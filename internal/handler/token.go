package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/auth"
)

// TokenHandler issues demo bearer tokens so the API can be exercised
// without an identity provider. Anyone may call it and request any
// name and role; do not expose it outside development setups.
type TokenHandler struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

func NewTokenHandler(secret, issuer string, ttl time.Duration) *TokenHandler {
	if ttl <= 0 {
		ttl = auth.DemoTokenTTL
	}
	return &TokenHandler{Secret: secret, Issuer: issuer, TTL: ttl}
}

// Issue handles GET /get-token?name=ann&admin=true. The token comes
// back as plain text, ready for an Authorization header.
func (h *TokenHandler) Issue(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	admin, _ := strconv.ParseBool(c.QueryParam("admin"))

	tok, err := auth.Issue(h.Secret, h.Issuer, name, admin, h.TTL)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, tok)
}
