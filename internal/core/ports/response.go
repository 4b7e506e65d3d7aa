package ports

import (
	"context"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// CreateResponseInput carries the data needed to submit a bid.
type CreateResponseInput struct {
	ProjectID    string
	ExecutorID   string
	ExecutorName string
	Role         domain.Role
	Message      string
	Price        float64
}

// ResponseService is the bid registry. Approve is the only path that grants
// approval; it enforces the one-approved-per-project rule.
type ResponseService interface {
	Create(ctx context.Context, input CreateResponseInput) (*domain.Response, error)
	// SetStatus is the plain owner-gated status overwrite. It never touches
	// the approval flag and rejects the accepted status.
	SetStatus(ctx context.Context, responseID, callerID string, status domain.ResponseStatus) (*domain.Response, error)
	Approve(ctx context.Context, responseID, projectID, callerID string) (*domain.Response, error)
	Cancel(ctx context.Context, responseID, callerID string) (*domain.Response, error)
	ListForProject(ctx context.Context, projectID string) ([]domain.Response, error)
	ListForExecutor(ctx context.Context, executorID string) ([]domain.Response, error)
	// CountNewForProject counts pending, not yet approved responses.
	CountNewForProject(ctx context.Context, projectID string) (int, error)
}
