package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shimson94/multithreaded-firewall-server/pkg/api/models"
	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// RequestLogHandler serves the audit log of raw request lines
type RequestLogHandler struct {
	engine engine.Service
}

// NewRequestLogHandler creates a new request log handler
func NewRequestLogHandler(eng engine.Service) *RequestLogHandler {
	return &RequestLogHandler{
		engine: eng,
	}
}

// ListRequests handles GET /api/v1/requests
func (h *RequestLogHandler) ListRequests(c *gin.Context) {
	entries := h.engine.Requests()

	c.JSON(http.StatusOK, models.RequestListResponse{
		Requests: entries,
		Count:    len(entries),
	})
}
