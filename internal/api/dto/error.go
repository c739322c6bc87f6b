package dto

// Error represents a standard error response
type Error struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"end_date must be on or after start_date"`
}
