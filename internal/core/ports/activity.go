package ports

import (
	"context"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// ActivityRecorder accepts activity events for asynchronous persistence.
// Record must never block the caller beyond queue admission.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// ActivityRepository persists activity events to the audit collection.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// ActivityService processes queued activity events.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
}
