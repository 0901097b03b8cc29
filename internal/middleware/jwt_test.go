package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/time-tracker-api/internal/auth"
)

const (
	testSecret = "test-secret"
	testIssuer = "time-tracker-api"
)

func authRequest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, auth.Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ident auth.Identity
	var stored bool
	h := JWTAuth(testSecret, testIssuer)(func(c echo.Context) error {
		ident, stored = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, ident, stored
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, stored := authRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, stored)
}

func TestJWTAuthRejectsNonBearer(t *testing.T) {
	rec, _, _ := authRequest(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsInvalidToken(t *testing.T) {
	rec, _, _ := authRequest(t, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthStoresIdentity(t *testing.T) {
	raw, err := auth.Issue(testSecret, testIssuer, "ann", true, time.Hour)
	require.NoError(t, err)

	rec, ident, stored := authRequest(t, "Bearer "+raw)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, stored)
	assert.Equal(t, "ann", ident.Name)
	assert.True(t, ident.Admin)
}

func TestJWTAuthLowercaseScheme(t *testing.T) {
	raw, err := auth.Issue(testSecret, testIssuer, "ann", false, time.Hour)
	require.NoError(t, err)

	rec, ident, stored := authRequest(t, "bearer "+raw)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, stored)
	assert.False(t, ident.Admin)
}

func TestJWTAuthRejectsExpired(t *testing.T) {
	raw, err := auth.Issue(testSecret, testIssuer, "ann", true, -time.Minute)
	require.NoError(t, err)

	rec, _, _ := authRequest(t, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer   abc  ", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
		{"Bear", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}
