package domain

import "time"

// ActivityKind labels an entry in the marketplace activity trail.
type ActivityKind string

const (
	ActivityProjectCreated    ActivityKind = "project_created"
	ActivityProjectUpdated    ActivityKind = "project_updated"
	ActivityProjectDeleted    ActivityKind = "project_deleted"
	ActivityResponseCreated   ActivityKind = "response_created"
	ActivityResponseApproved  ActivityKind = "response_approved"
	ActivityResponseCancelled ActivityKind = "response_cancelled"
	ActivityMessageSent       ActivityKind = "message_sent"
)

// ActivityEvent records a single marketplace action for the audit trail.
// Events are written asynchronously and never fail the originating request.
type ActivityEvent struct {
	Kind      ActivityKind
	EntityID  string
	ActorID   string
	Detail    string
	Timestamp time.Time
}
