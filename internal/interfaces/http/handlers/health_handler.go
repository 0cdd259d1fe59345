package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
)

// Check is a named readiness probe against one backing dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
	logger  logging.Logger
}

// NewHealthHandler constructs a HealthHandler over the given dependency
// checks.
func NewHealthHandler(logger logging.Logger, checks ...Check) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 3 * time.Second,
		logger:  logger.Named("health"),
	}
}

// Liveness handles GET /healthz.  Always healthy while the process serves.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz.  Probes every backing dependency and
// reports per-dependency state; any failure yields 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			h.logger.Warn("readiness probe failed",
				logging.String("dependency", check.Name),
				logging.Err(err))
			deps[check.Name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[check.Name] = "ok"
	}

	body := gin.H{"status": "ok", "dependencies": deps}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
