package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck checks one dependency the service cannot work without.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Health configures the unauthenticated /health endpoints.
type Health struct {
	Version string
	Checks  []ReadinessCheck
	Now     func() time.Time
}

type healthHandler struct {
	health Health
	logger logging.Logger
}

// Live answers as long as the process serves HTTP.
func (h *healthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.health.Now().UTC(),
		"version":   h.health.Version,
	})
}

// Ready runs every check; any failure turns the answer into 503.
func (h *healthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.health.Checks))
	ready := true
	for _, rc := range h.health.Checks {
		if err := rc.Check(ctx); err != nil {
			h.logger.Warn(ctx, "readiness check failed", "check", rc.Name, logging.Err(err))
			checks[rc.Name] = "unavailable"
			ready = false
			continue
		}
		checks[rc.Name] = "ok"
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": h.health.Now().UTC(),
		"checks":    checks,
	})
}
