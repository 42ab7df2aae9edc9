package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/monitoring"
)

// MonitoringHandler exposes the in-process metrics snapshot behind a
// shared-key check. When MONITORING_API_KEY is unset the endpoint is
// disabled entirely.
type MonitoringHandler struct {
	service *monitoring.Service
}

// NewMonitoringHandler creates a MonitoringHandler over the given service.
func NewMonitoringHandler(service *monitoring.Service) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

// Register mounts the monitoring routes on the given group.
func (h *MonitoringHandler) Register(api *gin.RouterGroup) {
	api.GET("/monitoring/snapshot", h.Snapshot)
}

// Snapshot handles GET /api/monitoring/snapshot.
func (h *MonitoringHandler) Snapshot(c *gin.Context) {
	if !checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, h.service.Snapshot(c.Request.Context()))
}

func checkMonitoringToken(c *gin.Context) bool {
	expected := strings.TrimSpace(os.Getenv("MONITORING_API_KEY"))
	if expected == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Monitoring API is disabled"})
		return false
	}

	provided := strings.TrimSpace(c.GetHeader("X-Monitoring-Key"))
	if provided == "" || provided != expected {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid monitoring key"})
		return false
	}
	return true
}
