package models

// CheckRequest represents a connection check request
type CheckRequest struct {
	IP   string `json:"ip" binding:"required"`
	Port *int   `json:"port" binding:"required"`
}

// CheckResponse represents a connection check result
type CheckResponse struct {
	IP      string `json:"ip"`
	Port    int    `json:"port"`
	Allowed bool   `json:"allowed"`
}

// RequestListResponse represents the audit log of raw request lines
type RequestListResponse struct {
	Requests []string `json:"requests"`
	Count    int      `json:"count"`
}
