package domain

import "time"

// ResponseStatus represents the lifecycle state of a response (bid).
type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseRejected  ResponseStatus = "rejected"
	ResponseCancelled ResponseStatus = "cancelled"
)

// Valid reports whether s is one of the known response statuses.
func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponsePending, ResponseAccepted, ResponseRejected, ResponseCancelled:
		return true
	}
	return false
}

// Response is an executor's offer against a specific project.
//
// Accepted is only reachable through the approval flow, which also rejects
// every competing response of the same project: at most one response per
// project carries Approved=true at any time.
type Response struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"project_id"`
	ExecutorID   string         `json:"executor_id"`
	ExecutorName string         `json:"executor_name"`
	Message      string         `json:"message"`
	Price        float64        `json:"price"`
	Status       ResponseStatus `json:"status"`
	Approved     bool           `json:"is_approved"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Cancellable reports whether the executor may still withdraw the response.
func (r *Response) Cancellable() bool {
	return r.Status == ResponsePending
}
