package models

// ErrorResponse represents an API error body
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Validation failed
	Error string `json:"error"`

	// Optional detail, e.g. the offending field
	// example: username must be at least 3 characters long
	Details string `json:"details,omitempty"`
}
