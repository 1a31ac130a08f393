package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/service"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

// Pinger is any dependency the readiness probe should reach.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics      *service.MetricsService
	dependencies map[string]Pinger
	timeout      time.Duration
}

// NewMetricsHandler constructs a metrics handler. dependencies are pinged by Ready.
func NewMetricsHandler(metrics *service.MetricsService, dependencies map[string]Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, dependencies: dependencies, timeout: 2 * time.Second}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	var failed []string
	for _, name := range names {
		if err := h.dependencies[name].Ping(ctx); err != nil {
			checks[name] = err.Error()
			failed = append(failed, name)
			continue
		}
		checks[name] = "ok"
	}

	if len(failed) > 0 {
		appErr := appErrors.Clone(appErrors.ErrUnavailable, "dependencies unavailable")
		c.JSON(appErr.Status, response.Envelope{Error: appErr, Meta: map[string]interface{}{"checks": checks}})
		return
	}
	response.OK(c, gin.H{"status": "ready"}, map[string]interface{}{"checks": checks})
}

// Stats returns the aggregated counters of the metrics service.
func (h *MetricsHandler) Stats(c *gin.Context) {
	response.OK(c, h.metrics.Snapshot())
}
