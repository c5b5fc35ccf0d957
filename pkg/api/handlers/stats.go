package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shimson94/multithreaded-firewall-server/pkg/api/models"
	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// StatisticsHandler serves request counters
type StatisticsHandler struct {
	engine engine.Service
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(eng engine.Service) *StatisticsHandler {
	return &StatisticsHandler{
		engine: eng,
	}
}

// GetStats handles GET /api/v1/stats
func (h *StatisticsHandler) GetStats(c *gin.Context) {
	stats := h.engine.Stats()

	c.JSON(http.StatusOK, models.StatisticsResponse{
		TotalRequests:       stats.TotalRequests,
		RulesAdded:          stats.RulesAdded,
		RulesDeleted:        stats.RulesDeleted,
		ConnectionsAccepted: stats.ConnectionsAccepted,
		ConnectionsRejected: stats.ConnectionsRejected,
		IllegalRequests:     stats.IllegalRequests,
	})
}
