package api

import (
	"github.com/shimson94/multithreaded-firewall-server/pkg/api/handlers"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.engine)
	ruleHandler := handlers.NewRuleHandler(s.engine)
	checkHandler := handlers.NewCheckHandler(s.engine)
	requestHandler := handlers.NewRequestLogHandler(s.engine)
	statsHandler := handlers.NewStatisticsHandler(s.engine)

	// API v1 group
	v1 := s.router.Group("/api/v1")
	{
		// Health and status endpoints
		v1.GET("/health", healthHandler.GetHealth)
		v1.GET("/status", healthHandler.GetStatus)

		// Rule management endpoints
		rules := v1.Group("/rules")
		{
			rules.POST("", ruleHandler.CreateRule)
			rules.GET("", ruleHandler.ListRules)
			rules.DELETE("", ruleHandler.DeleteRule)
		}

		// Connection check endpoint
		v1.POST("/check", checkHandler.CheckConnection)

		// Audit log endpoint
		v1.GET("/requests", requestHandler.ListRequests)

		// Statistics endpoint
		v1.GET("/stats", statsHandler.GetStats)
	}
}
