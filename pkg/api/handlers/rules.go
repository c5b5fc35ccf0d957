package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shimson94/multithreaded-firewall-server/pkg/api/models"
	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// hasWhitespace reports whether any field contains whitespace, which
// would shift token boundaries in the protocol line built from it.
func hasWhitespace(fields ...string) bool {
	for _, f := range fields {
		if strings.ContainsAny(f, " \t\r\n\v\f") {
			return true
		}
	}
	return false
}

// RuleHandler handles rule management requests
type RuleHandler struct {
	engine engine.Service
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(eng engine.Service) *RuleHandler {
	return &RuleHandler{
		engine: eng,
	}
}

// CreateRule handles POST /api/v1/rules
//
// The request is funneled through the textual engine so it lands in the
// audit log and obeys exactly the wire protocol's semantics.
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req models.RuleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"validation_error",
			"Invalid request body",
			err.Error(),
		))
		return
	}

	if hasWhitespace(req.IPRange, req.PortRange) {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"validation_error",
			"Ranges must not contain whitespace",
			nil,
		))
		return
	}

	resp := h.engine.Process(fmt.Sprintf("A %s %s", req.IPRange, req.PortRange))

	switch resp {
	case engine.RespRuleAdded:
		c.JSON(http.StatusCreated, models.RuleResponse{
			IPRange:   req.IPRange,
			PortRange: req.PortRange,
		})
	case engine.RespRuleExists:
		c.JSON(http.StatusConflict, models.NewErrorResponse(
			http.StatusConflict,
			"rule_exists",
			resp,
			nil,
		))
	default:
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"invalid_rule",
			resp,
			nil,
		))
	}
}

// DeleteRule handles DELETE /api/v1/rules
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	var req models.RuleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"validation_error",
			"Invalid request body",
			err.Error(),
		))
		return
	}

	if hasWhitespace(req.IPRange, req.PortRange) {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"validation_error",
			"Ranges must not contain whitespace",
			nil,
		))
		return
	}

	resp := h.engine.Process(fmt.Sprintf("D %s %s", req.IPRange, req.PortRange))

	switch resp {
	case engine.RespRuleDeleted:
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Rule %s %s deleted", req.IPRange, req.PortRange),
		})
	case engine.RespRuleNotFound:
		c.JSON(http.StatusNotFound, models.NewErrorResponse(
			http.StatusNotFound,
			"not_found",
			resp,
			nil,
		))
	default:
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(
			http.StatusBadRequest,
			"invalid_rule",
			resp,
			nil,
		))
	}
}

// ListRules handles GET /api/v1/rules
func (h *RuleHandler) ListRules(c *gin.Context) {
	rules := h.engine.Snapshot()

	ruleResponses := make([]models.RuleResponse, 0, len(rules))
	for _, r := range rules {
		rr := models.RuleResponse{
			IPRange:   r.IPRange,
			PortRange: r.PortRange,
		}
		for _, q := range r.Queries {
			rr.Queries = append(rr.Queries, models.QueryResponse{
				IP:   q.IP,
				Port: q.Port,
			})
		}
		ruleResponses = append(ruleResponses, rr)
	}

	log.Debugf("Listing %d rules", len(ruleResponses))

	c.JSON(http.StatusOK, models.RuleListResponse{
		Rules: ruleResponses,
		Count: len(ruleResponses),
	})
}
