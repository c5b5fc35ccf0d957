package models

// HealthResponse represents a basic health check result
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatisticsResponse represents cumulative request counters
type StatisticsResponse struct {
	TotalRequests       uint64 `json:"total_requests"`
	RulesAdded          uint64 `json:"rules_added"`
	RulesDeleted        uint64 `json:"rules_deleted"`
	ConnectionsAccepted uint64 `json:"connections_accepted"`
	ConnectionsRejected uint64 `json:"connections_rejected"`
	IllegalRequests     uint64 `json:"illegal_requests"`
}

// StatusResponse represents detailed server status
type StatusResponse struct {
	Status     string              `json:"status"`
	Version    string              `json:"version"`
	RuleCount  int                 `json:"rule_count"`
	Statistics *StatisticsResponse `json:"statistics"`
	Uptime     int64               `json:"uptime_seconds"`
}
