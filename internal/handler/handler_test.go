package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/handler"
)

func serve(t *testing.T, e *echo.Echo, method, path string) (*httptest.ResponseRecorder, handler.ErrorResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var body handler.ErrorResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

// =====================
// ErrorHandler
// =====================

func TestErrorHandler_Envelope(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = handler.NewErrorHandler(zap.NewNop())

	e.GET("/locked", func(c echo.Context) error {
		return apperr.ErrTooManyAttempts.WithDetail(map[string]int{"retry_after_seconds": 900})
	})
	e.GET("/weak", func(c echo.Context) error {
		return apperr.ErrWeakPassword.WithDetail([]string{"must contain a digit"})
	})
	e.GET("/db", func(c echo.Context) error {
		return apperr.ErrDatabase.Wrap(errors.New("pq: connection refused"))
	})
	e.GET("/plain", func(c echo.Context) error {
		return errors.New("secret internals")
	})

	rec, body := serve(t, e, http.MethodGet, "/locked")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_ATTEMPTS", body.Error)
	assert.Equal(t, map[string]any{"retry_after_seconds": float64(900)}, body.Detail)

	rec, body = serve(t, e, http.MethodGet, "/weak")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WEAK_PASSWORD", body.Error)

	rec, body = serve(t, e, http.MethodGet, "/db")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DATABASE_ERROR", body.Error)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	rec, body = serve(t, e, http.MethodGet, "/plain")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", body.Error)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestErrorHandler_EchoErrors(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = handler.NewErrorHandler(zap.NewNop())
	e.GET("/only-get", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec, body := serve(t, e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body.Error)

	rec, body = serve(t, e, http.MethodPost, "/only-get")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Error)
}

// =====================
// Health
// =====================

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	cases := []struct {
		name   string
		ping   error
		status int
		want   string
	}{
		{"ok", nil, http.StatusOK, `"status":"ok"`},
		{"db down", errors.New("down"), http.StatusServiceUnavailable, `"status":"degraded"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			handler.NewHealthHandler(pingerFunc(func(context.Context) error { return tc.ping })).RegisterRoutes(e)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}
