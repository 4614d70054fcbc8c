package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
)

type HealthHandler struct {
	checks map[string]port.HealthChecker
}

// NewHealthHandler pings every named dependency on each probe.
func NewHealthHandler(checks map[string]port.HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	result := response.HealthResponse{
		Status:    "ok",
		Checks:    make(map[string]string, len(h.checks)),
		Timestamp: time.Now().UTC(),
	}

	code := http.StatusOK

	for name, checker := range h.checks {
		if err := checker.HealthCheck(ctx); err != nil {
			result.Checks[name] = err.Error()
			result.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}

		result.Checks[name] = "ok"
	}

	c.JSON(code, result)
}
