package http

import (
	"go.uber.org/zap"

	"city-api/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogResponseSuccess is called after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, httpStatus int, latency int64)

	// LogResponseError is called after the last failed attempt of a request
	LogResponseError(method, url string, httpStatus int, latency int64, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, httpStatus int, latency int64, err error, retryCount, maxRetries int)
}

type zapHTTPLogger struct{}

// NewZapHTTPLogger returns an HTTPLogger writing through pkg/log.
func NewZapHTTPLogger() HTTPLogger {
	return zapHTTPLogger{}
}

func (zapHTTPLogger) LogResponseSuccess(method, url string, httpStatus int, latency int64) {
	log.Debug("http request completed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (zapHTTPLogger) LogResponseError(method, url string, httpStatus int, latency int64, err error) {
	log.Warn("http request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func (zapHTTPLogger) LogRequestRetry(method, url string, httpStatus int, latency int64, err error, retryCount, maxRetries int) {
	log.Warn("http request retrying",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}
