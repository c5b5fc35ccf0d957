package models

// RuleRequest represents a rule creation/deletion request
type RuleRequest struct {
	IPRange   string `json:"ip_range" binding:"required"`
	PortRange string `json:"port_range" binding:"required"`
}

// QueryResponse represents one recorded connection check
type QueryResponse struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// RuleResponse represents a rule in API responses
type RuleResponse struct {
	IPRange   string          `json:"ip_range"`
	PortRange string          `json:"port_range"`
	Queries   []QueryResponse `json:"queries"`
}

// RuleListResponse represents a list of rules
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Count int            `json:"count"`
}
