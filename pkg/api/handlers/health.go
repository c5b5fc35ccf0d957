package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shimson94/multithreaded-firewall-server/pkg/api/models"
	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

var startTime = time.Now()

// HealthHandler handles health check requests
type HealthHandler struct {
	engine engine.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(eng engine.Service) *HealthHandler {
	return &HealthHandler{
		engine: eng,
	}
}

// GetHealth handles GET /api/v1/health
// Simple health check endpoint
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Message: "API server is healthy",
	})
}

// GetStatus handles GET /api/v1/status
// Detailed status endpoint with rule count and request counters
func (h *HealthHandler) GetStatus(c *gin.Context) {
	stats := h.engine.Stats()

	response := models.StatusResponse{
		Status:    "ok",
		Version:   "0.1.0", // TODO: Get from build info
		RuleCount: h.engine.RuleCount(),
		Statistics: &models.StatisticsResponse{
			TotalRequests:       stats.TotalRequests,
			RulesAdded:          stats.RulesAdded,
			RulesDeleted:        stats.RulesDeleted,
			ConnectionsAccepted: stats.ConnectionsAccepted,
			ConnectionsRejected: stats.ConnectionsRejected,
			IllegalRequests:     stats.IllegalRequests,
		},
		Uptime: int64(time.Since(startTime).Seconds()),
	}

	c.JSON(http.StatusOK, response)
}
