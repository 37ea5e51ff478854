package handler

import (
	"net/http"

	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// OpsHandler exposes operator-facing surfaces.
type OpsHandler struct {
	statusSvc ports.StatusService
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(statusSvc ports.StatusService) *OpsHandler {
	return &OpsHandler{statusSvc: statusSvc}
}

// StalledReconciliations handles GET /ops/reconciliation/stalled. Each
// entry names a subject whose provider state could not be confirmed
// within the retry budget and needs manual follow-up.
func (h *OpsHandler) StalledReconciliations(c *gin.Context) {
	tasks, err := h.statusSvc.StalledReconciliations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tasks)
}

// HealthCheck handles GET /health, a deep health check verifying all
// dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
