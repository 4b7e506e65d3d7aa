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

// ProjectService is the project registry. The full collection lives in
// memory under a mutex and is re-serialized to the snapshot store after
// every mutation; a mutation that fails validation never writes.
type ProjectService struct {
	mu       sync.Mutex
	loaded   bool
	projects []domain.Project

	store    ports.SnapshotStore
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewProjectService(store ports.SnapshotStore, activity ports.ActivityRecorder, logger zerolog.Logger) *ProjectService {
	return &ProjectService{store: store, activity: activity, logger: logger}
}

// Load reads the snapshot into memory. Called once at startup; later calls
// are no-ops, and every operation loads lazily as a fallback.
func (s *ProjectService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked(ctx)
}

func (s *ProjectService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	data, err := s.store.Load(ctx, ports.KeyProjects)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.projects); err != nil {
			return fmt.Errorf("decode projects: %w", err)
		}
	}
	s.loaded = true
	return nil
}

// saveLocked persists updated and swaps it in only after the write succeeds,
// so a storage failure leaves the registry unchanged.
func (s *ProjectService) saveLocked(ctx context.Context, updated []domain.Project) error {
	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	if err := s.store.Save(ctx, ports.KeyProjects, data); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	s.projects = updated
	return nil
}

func (s *ProjectService) record(event domain.ActivityEvent) {
	if s.activity != nil {
		s.activity.Record(event)
	}
}

func validateProjectInput(input ports.CreateProjectInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if input.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", domain.ErrValidation)
	}
	if input.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", domain.ErrValidation)
	}
	if !domain.ValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}
	return nil
}

// Create posts a new project owned by the caller. Only customers may post.
func (s *ProjectService) Create(ctx context.Context, ownerID, ownerName string, role domain.Role, input ports.CreateProjectInput) (*domain.Project, error) {
	if role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers may post projects", domain.ErrForbidden)
	}
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	project := domain.Project{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Budget:       input.Budget,
		Deadline:     input.Deadline,
		Category:     input.Category,
		Tags:         input.Tags,
		Requirements: input.Requirements,
		Status:       domain.ProjectOpen,
		OwnerID:      ownerID,
		OwnerName:    ownerName,
		CreatedAt:    time.Now().UTC(),
	}

	updated := append(append([]domain.Project(nil), s.projects...), project)
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.Category).Inc()
	s.logger.Info().Str("project_id", project.ID).Str("owner_id", ownerID).Msg("project created")
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityProjectCreated,
		EntityID:  project.ID,
		ActorID:   ownerID,
		Detail:    project.Title,
		Timestamp: project.CreatedAt,
	})
	return &project, nil
}

// Update applies the non-nil patch fields to an owned project. Fields absent
// from the patch keep their prior value; present fields are applied even
// when they carry a zero value.
func (s *ProjectService) Update(ctx context.Context, id, ownerID string, patch ports.ProjectPatch) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, domain.ErrProjectNotFound
	}
	if s.projects[idx].OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}

	project := s.projects[idx]
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
		}
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Budget != nil {
		if *patch.Budget <= 0 {
			return nil, fmt.Errorf("%w: budget must be positive", domain.ErrValidation)
		}
		project.Budget = *patch.Budget
	}
	if patch.Deadline != nil {
		project.Deadline = *patch.Deadline
	}
	if patch.Category != nil {
		if !domain.ValidCategory(*patch.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *patch.Category)
		}
		project.Category = *patch.Category
	}
	if patch.Tags != nil {
		project.Tags = *patch.Tags
	}
	if patch.Requirements != nil {
		project.Requirements = *patch.Requirements
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *patch.Status)
		}
		project.Status = *patch.Status
	}

	updated := append([]domain.Project(nil), s.projects...)
	updated[idx] = project
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Msg("project updated")
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityProjectUpdated,
		EntityID:  id,
		ActorID:   ownerID,
		Timestamp: time.Now().UTC(),
	})
	return &project, nil
}

// Delete removes an owned project from the registry.
func (s *ProjectService) Delete(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.ErrProjectNotFound
	}
	if s.projects[idx].OwnerID != ownerID {
		return fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}

	updated := append([]domain.Project(nil), s.projects[:idx]...)
	updated = append(updated, s.projects[idx+1:]...)
	if err := s.saveLocked(ctx, updated); err != nil {
		return err
	}

	s.logger.Info().Str("project_id", id).Msg("project deleted")
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityProjectDeleted,
		EntityID:  id,
		ActorID:   ownerID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// Get returns a single project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, domain.ErrProjectNotFound
	}
	project := s.projects[idx]
	return &project, nil
}

// ListAll returns the full registry. Unbounded; fine at the intended
// dataset size, a pagination layer belongs in front of larger catalogs.
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return append([]domain.Project(nil), s.projects...), nil
}

// ListByOwner returns the caller's own projects.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	var owned []domain.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// AddMessage appends an entry to the project's discussion thread. Any
// authenticated user may post.
func (s *ProjectService) AddMessage(ctx context.Context, id, senderID, text string) (*domain.ProjectMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, domain.ErrProjectNotFound
	}

	msg := domain.ProjectMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	updated := append([]domain.Project(nil), s.projects...)
	project := updated[idx]
	project.Messages = append(append([]domain.ProjectMessage(nil), project.Messages...), msg)
	updated[idx] = project
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}
	return &msg, nil
}

// indexLocked returns the position of the project with the given id, -1 when
// absent. Callers must hold the mutex.
func (s *ProjectService) indexLocked(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}
