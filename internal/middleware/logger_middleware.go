package middleware

import (
	"net/http"
	"strconv"
	"time"

	"contentcraft-api/internal/logger"
	"contentcraft-api/internal/metrics"

	"github.com/sirupsen/logrus"
)

// LoggingMiddleware logs the details of each request and records the
// request metrics.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer to capture the status code
		rw := &responseWriter{w, http.StatusOK}

		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rw.statusCode), r.Method).Inc()
		metrics.HttpRequestDuration.WithLabelValues(r.URL.Path, r.Method).Observe(elapsed.Seconds())

		logger.LogEvent(logrus.InfoLevel, "Request handled", logrus.Fields{
			"method":        r.Method,
			"url":           r.URL.Path,
			"status_code":   rw.statusCode,
			"response_time": elapsed.Milliseconds(),
			"ip":            clientKey(r),
		})
	})
}

// responseWriter is a wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
