package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/api/metrics"
	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists events to the
// audit repository. Failures are counted and logged by the caller; they
// never propagate back to the request that emitted the event.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single activity event.
func (s *activityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.ActivityErrorsTotal.Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	s.log.Debug().
		Str("kind", string(event.Kind)).
		Str("entity_id", event.EntityID).
		Str("actor_id", event.ActorID).
		Msg("activity recorded")
	return nil
}
