package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runErrorHandler(t *testing.T, err error, verbose bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(zap.NewNop(), verbose)(err, c)
	return rec
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	rec := runErrorHandler(t, errors.New("dial tcp 10.0.0.5:3306: connect: connection refused"), false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Internal Server Error", p.Title)
	assert.Equal(t, http.StatusInternalServerError, p.Status)
	assert.Equal(t, "/api/users/1", p.Instance)
	assert.NotContains(t, p.Detail, "dial tcp")
}

func TestErrorHandlerVerboseDetail(t *testing.T) {
	rec := runErrorHandler(t, errors.New("boom"), true)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "boom", p.Detail)
}

func TestErrorHandlerKeepsHTTPErrorStatus(t *testing.T) {
	rec := runErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"), false)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Not Found", p.Title)
	assert.Equal(t, http.StatusNotFound, p.Status)
}

func TestErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.String(http.StatusOK, "already written"))
	ErrorHandler(zap.NewNop(), false)(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "already written", rec.Body.String())
}

func TestValidationBody(t *testing.T) {
	v := NewValidation(map[string][]string{
		"name":     {"must not be empty"},
		"hourRate": {"must be greater than zero"},
	}, "/api/users")

	body, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "Validation failed", decoded["title"])
	assert.Equal(t, float64(http.StatusBadRequest), decoded["status"])

	errs, ok := decoded["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "hourRate")
}
