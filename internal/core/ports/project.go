package ports

import (
	"context"
	"time"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// CreateProjectInput carries all data needed to post a new project.
type CreateProjectInput struct {
	Title        string
	Description  string
	Budget       float64
	Deadline     time.Time
	Category     string
	Tags         []string
	Requirements []string
}

// ProjectPatch holds the optional fields of an update. Only non-nil fields
// are applied, so zero values ("" or 0) are legal new values.
type ProjectPatch struct {
	Title        *string
	Description  *string
	Budget       *float64
	Deadline     *time.Time
	Category     *string
	Tags         *[]string
	Requirements *[]string
	Status       *domain.ProjectStatus
}

// ProjectService is the project registry: a customer's projects with
// owner-gated mutation.
type ProjectService interface {
	Create(ctx context.Context, ownerID, ownerName string, role domain.Role, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id, ownerID string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id, ownerID string) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	AddMessage(ctx context.Context, id, senderID, text string) (*domain.ProjectMessage, error)
}
