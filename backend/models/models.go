// ABOUTME: Shared API envelope types for errors and health
// ABOUTME: JSON-serializable structures returned by every endpoint

package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse reports service liveness and cache state
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	CachedPlans   int       `json:"cached_plans"`
	DefaultParity string    `json:"default_parity"`
}
