package dto

// ErrorResponse represents a generic error response body. Field is set
// for validation failures so the form can highlight the offending input.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
