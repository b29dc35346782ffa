package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEcho() *echo.Echo {
	e := echo.New()
	SetupRequestLogger(e)
	SetupRateLimiter(e, RateLimitConfig{Rate: 1, Burst: 2, ExpiresIn: time.Minute})

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/cities", ok)
	e.GET("/cities/stream", ok)
	e.GET("/health", ok)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_DeniesAfterBurst(t *testing.T) {
	e := newEcho()

	assert.Equal(t, http.StatusOK, get(e, "/cities").Code)
	assert.Equal(t, http.StatusOK, get(e, "/cities").Code)

	rec := get(e, "/cities")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimiter_SkipsStreamAndHealth(t *testing.T) {
	e := newEcho()

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(e, "/cities/stream").Code)
		assert.Equal(t, http.StatusOK, get(e, "/health").Code)
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	e := newEcho()

	rec := get(e, "/cities")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
