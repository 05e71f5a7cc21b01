package dto

import "time"

// StructuredResponse answers writes that have a message for the student,
// e.g. "Profile updated"
type StructuredResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message" example:"Profile updated"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-09-01T08:00:00Z"`
}

// NewStructuredResponse creates a successful StructuredResponse
func NewStructuredResponse(data interface{}, message string) StructuredResponse {
	return StructuredResponse{Success: true, Message: message, Data: data, Timestamp: time.Now()}
}

// PaginationInfo describes one page of a list. CurrentPage is 1-based.
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// PaginatedResponse is one page of Items
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
