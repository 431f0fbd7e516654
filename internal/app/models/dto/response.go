package dto

import (
	"time"
)

// APIResponse is the standard success envelope for API endpoints
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-02-11T12:01:05.123Z"`
}

// SuccessResponse represents a simple message-only success response
type SuccessResponse struct {
	Message string `json:"message"`
}
