package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/api/metrics"
	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// ResponseService is the bid registry. Like the other registries it keeps
// the whole collection in memory and re-serializes it on every mutation.
// Project ownership checks go through the project registry by id.
type ResponseService struct {
	mu        sync.Mutex
	loaded    bool
	responses []domain.Response

	store    ports.SnapshotStore
	projects ports.ProjectService
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewResponseService(store ports.SnapshotStore, projects ports.ProjectService, activity ports.ActivityRecorder, logger zerolog.Logger) *ResponseService {
	return &ResponseService{store: store, projects: projects, activity: activity, logger: logger}
}

// Load reads the snapshot into memory; safe to call more than once.
func (s *ResponseService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked(ctx)
}

func (s *ResponseService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	data, err := s.store.Load(ctx, ports.KeyResponses)
	if err != nil {
		return fmt.Errorf("load responses: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.responses); err != nil {
			return fmt.Errorf("decode responses: %w", err)
		}
	}
	s.loaded = true
	return nil
}

func (s *ResponseService) saveLocked(ctx context.Context, updated []domain.Response) error {
	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	if err := s.store.Save(ctx, ports.KeyResponses, data); err != nil {
		return fmt.Errorf("save responses: %w", err)
	}
	s.responses = updated
	return nil
}

func (s *ResponseService) record(event domain.ActivityEvent) {
	if s.activity != nil {
		s.activity.Record(event)
	}
}

// Create submits a new bid. Only executors may respond, and only against an
// existing open project.
func (s *ResponseService) Create(ctx context.Context, input ports.CreateResponseInput) (*domain.Response, error) {
	if input.Role != domain.RoleExecutor {
		return nil, fmt.Errorf("%w: only executors may respond to projects", domain.ErrForbidden)
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}

	project, err := s.projects.Get(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectOpen {
		return nil, fmt.Errorf("%w: project is not open for responses", domain.ErrResponseState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	response := domain.Response{
		ID:           uuid.NewString(),
		ProjectID:    input.ProjectID,
		ExecutorID:   input.ExecutorID,
		ExecutorName: input.ExecutorName,
		Message:      input.Message,
		Price:        input.Price,
		Status:       domain.ResponsePending,
		Approved:     false,
		CreatedAt:    time.Now().UTC(),
	}

	updated := append(append([]domain.Response(nil), s.responses...), response)
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	metrics.ResponsesCreatedTotal.Inc()
	s.logger.Info().Str("response_id", response.ID).Str("project_id", input.ProjectID).Str("executor_id", input.ExecutorID).Msg("response created")
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityResponseCreated,
		EntityID:  response.ID,
		ActorID:   input.ExecutorID,
		Detail:    input.ProjectID,
		Timestamp: response.CreatedAt,
	})
	return &response, nil
}

// SetStatus overwrites a response's status. Only the owner of the response's
// project may call it. It never touches the approval flag and refuses the
// accepted status, which is reachable only through Approve.
func (s *ResponseService) SetStatus(ctx context.Context, responseID, callerID string, status domain.ResponseStatus) (*domain.Response, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	if status == domain.ResponseAccepted {
		return nil, fmt.Errorf("%w: accepted is only set through approval", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(responseID)
	if idx < 0 {
		return nil, domain.ErrResponseNotFound
	}

	project, err := s.projects.Get(ctx, s.responses[idx].ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != callerID {
		return nil, fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}

	updated := append([]domain.Response(nil), s.responses...)
	updated[idx].Status = status
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	result := updated[idx]
	return &result, nil
}

// Approve accepts one response and rejects every competitor on the same
// project. If a different response is already approved the call fails; the
// invariant that at most one response per project carries approval holds
// after any sequence of calls. Re-approving the already approved response is
// an idempotent success.
func (s *ResponseService) Approve(ctx context.Context, responseID, projectID, callerID string) (*domain.Response, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != callerID {
		return nil, fmt.Errorf("%w: only the project owner may approve responses", domain.ErrForbidden)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	target := -1
	for i := range s.responses {
		r := &s.responses[i]
		if r.ID == responseID {
			if r.ProjectID != projectID {
				return nil, domain.ErrResponseNotFound
			}
			target = i
			continue
		}
		if r.ProjectID == projectID && r.Approved {
			return nil, fmt.Errorf("%w: another response is already approved", domain.ErrResponseState)
		}
	}
	if target < 0 {
		return nil, domain.ErrResponseNotFound
	}

	if s.responses[target].Approved {
		// Already approved by an earlier call; nothing to change.
		result := s.responses[target]
		return &result, nil
	}

	updated := append([]domain.Response(nil), s.responses...)
	for i := range updated {
		if updated[i].ProjectID != projectID {
			continue
		}
		if i == target {
			updated[i].Status = domain.ResponseAccepted
			updated[i].Approved = true
		} else {
			updated[i].Status = domain.ResponseRejected
			updated[i].Approved = false
		}
	}
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	metrics.ResponsesApprovedTotal.Inc()
	s.logger.Info().Str("response_id", responseID).Str("project_id", projectID).Msg("response approved")
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityResponseApproved,
		EntityID:  responseID,
		ActorID:   callerID,
		Detail:    projectID,
		Timestamp: time.Now().UTC(),
	})
	result := updated[target]
	return &result, nil
}

// Cancel withdraws the caller's own pending response.
func (s *ResponseService) Cancel(ctx context.Context, responseID, callerID string) (*domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(responseID)
	if idx < 0 {
		return nil, domain.ErrResponseNotFound
	}
	if s.responses[idx].ExecutorID != callerID {
		return nil, fmt.Errorf("%w: not the response author", domain.ErrForbidden)
	}
	if !s.responses[idx].Cancellable() {
		return nil, fmt.Errorf("%w: only pending responses can be cancelled", domain.ErrResponseState)
	}

	updated := append([]domain.Response(nil), s.responses...)
	updated[idx].Status = domain.ResponseCancelled
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("response_id", responseID).Msg("response cancelled")
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityResponseCancelled,
		EntityID:  responseID,
		ActorID:   callerID,
		Timestamp: time.Now().UTC(),
	})
	result := updated[idx]
	return &result, nil
}

// ListForProject returns all responses submitted against a project.
func (s *ResponseService) ListForProject(ctx context.Context, projectID string) ([]domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	var matched []domain.Response
	for _, r := range s.responses {
		if r.ProjectID == projectID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// ListForExecutor returns all responses the executor has submitted.
func (s *ResponseService) ListForExecutor(ctx context.Context, executorID string) ([]domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	var matched []domain.Response
	for _, r := range s.responses {
		if r.ExecutorID == executorID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// CountNewForProject counts pending, not yet approved responses.
func (s *ResponseService) CountNewForProject(ctx context.Context, projectID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	n := 0
	for _, r := range s.responses {
		if r.ProjectID == projectID && r.Status == domain.ResponsePending && !r.Approved {
			n++
		}
	}
	return n, nil
}

func (s *ResponseService) indexLocked(id string) int {
	for i := range s.responses {
		if s.responses[i].ID == id {
			return i
		}
	}
	return -1
}
