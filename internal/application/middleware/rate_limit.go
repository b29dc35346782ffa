package middleware

import (
	"net/http"
	"strings"
	"time"

	"city-api/pkg/log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig bounds requests per client IP
type RateLimitConfig struct {
	Rate      float64
	Burst     int
	ExpiresIn time.Duration
}

// SetupRateLimiter limits each client IP with an in-memory token bucket.
// Streams and health checks are not limited.
func SetupRateLimiter(e *echo.Echo, config RateLimitConfig) {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(config.Rate),
		Burst:     config.Burst,
		ExpiresIn: config.ExpiresIn,
	})

	e.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return c.Request().Method == http.MethodGet &&
				(strings.HasSuffix(path, "/stream") || strings.HasSuffix(path, "/health"))
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			log.Warnf("rate limit exceeded for %s on %s", identifier, c.Request().URL.Path)
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Unable to identify client"})
		},
	}))
}
