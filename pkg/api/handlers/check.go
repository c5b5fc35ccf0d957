package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shimson94/multithreaded-firewall-server/pkg/api/models"
	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// CheckHandler handles connection check requests
type CheckHandler struct {
	engine engine.Service
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(eng engine.Service) *CheckHandler {
	return &CheckHandler{
		engine: eng,
	}
}

// CheckConnection handles POST /api/v1/check
func (h *CheckHandler) CheckConnection(c *gin.Context) {
	var req models.CheckRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"validation_error",
			"Invalid request body",
			err.Error(),
		))
		return
	}

	if hasWhitespace(req.IP) {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"validation_error",
			"IP must not contain whitespace",
			nil,
		))
		return
	}

	resp := h.engine.Process(fmt.Sprintf("C %s %d", req.IP, *req.Port))

	switch resp {
	case engine.RespConnectionAccepted, engine.RespConnectionRejected:
		c.JSON(http.StatusOK, models.CheckResponse{
			IP:      req.IP,
			Port:    *req.Port,
			Allowed: resp == engine.RespConnectionAccepted,
		})
	default:
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"illegal_query",
			resp,
			nil,
		))
	}
}
