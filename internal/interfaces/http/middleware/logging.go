// Package middleware holds the cross-cutting HTTP middleware: request
// logging, API-key authentication, CORS, and request IDs.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	promx "github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/prometheus"
)

// LoggingConfig tunes the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are paths that are never logged, typically health probes.
	SkipPaths []string

	// SlowThreshold promotes requests above this duration to Warn level.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig returns the configuration used by the apiserver.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// RequestLogging logs each request with method, path, status, duration and
// request ID, and records the HTTP metrics.  4xx responses log at Warn, 5xx
// at Error.  metrics may be nil.
func RequestLogging(logger logging.Logger, metrics *promx.Metrics, cfg LoggingConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}
	log := logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		if metrics != nil {
			// FullPath keeps the route template so path params do not
			// explode label cardinality.
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(duration.Seconds())
		}

		if _, ok := skip[path]; ok {
			return
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("duration", duration),
			logging.String("remote_addr", c.ClientIP()),
			logging.String("request_id", RequestIDFromContext(c)),
		}
		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		case cfg.SlowThreshold > 0 && duration > cfg.SlowThreshold:
			log.Warn("slow request", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
