package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// responseFixture wires a project and response registry over one store and
// posts a single open project owned by cust-1.
func responseFixture(t *testing.T) (*ResponseService, *domain.Project) {
	t.Helper()
	store := newMemStore()
	projects := NewProjectService(store, nil, zerolog.Nop())
	svc := NewResponseService(store, projects, nil, zerolog.Nop())

	project, err := projects.Create(context.Background(), "cust-1", "Alice", domain.RoleCustomer, validProjectInput())
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return svc, project
}

func bidInput(projectID, executorID string) ports.CreateResponseInput {
	return ports.CreateResponseInput{
		ProjectID:    projectID,
		ExecutorID:   executorID,
		ExecutorName: "Bob",
		Role:         domain.RoleExecutor,
		Message:      "I can deliver in a week",
		Price:        450,
	}
}

func TestResponseService_Create_Success(t *testing.T) {
	svc, project := responseFixture(t)

	resp, err := svc.Create(context.Background(), bidInput(project.ID, "exec-1"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.Status != domain.ResponsePending {
		t.Fatalf("expected pending status, got %s", resp.Status)
	}
	if resp.Approved {
		t.Fatalf("new response must not be approved")
	}
}

func TestResponseService_Create_Gating(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	input := bidInput(project.ID, "cust-2")
	input.Role = domain.RoleCustomer
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer, got %v", err)
	}

	input = bidInput(project.ID, "exec-1")
	input.Message = "  "
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank message, got %v", err)
	}

	input = bidInput(project.ID, "exec-1")
	input.Price = 0
	if _, err := svc.Create(ctx, input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero price, got %v", err)
	}

	if _, err := svc.Create(ctx, bidInput("missing", "exec-1")); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestResponseService_Create_ProjectNotOpen(t *testing.T) {
	store := newMemStore()
	projects := NewProjectService(store, nil, zerolog.Nop())
	svc := NewResponseService(store, projects, nil, zerolog.Nop())
	ctx := context.Background()

	project, err := projects.Create(ctx, "cust-1", "Alice", domain.RoleCustomer, validProjectInput())
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	status := domain.ProjectCompleted
	if _, err := projects.Update(ctx, project.ID, "cust-1", ports.ProjectPatch{Status: &status}); err != nil {
		t.Fatalf("update project: %v", err)
	}

	if _, err := svc.Create(ctx, bidInput(project.ID, "exec-1")); !errors.Is(err, domain.ErrResponseState) {
		t.Fatalf("expected ErrResponseState for closed project, got %v", err)
	}
}

func TestResponseService_Approve_RejectsCompetitors(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, bidInput(project.ID, "exec-1"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, bidInput(project.ID, "exec-2"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	approved, err := svc.Approve(ctx, first.ID, project.ID, "cust-1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.ResponseAccepted || !approved.Approved {
		t.Fatalf("unexpected approved response: %+v", approved)
	}

	all, err := svc.ListForProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListForProject: %v", err)
	}
	for _, r := range all {
		switch r.ID {
		case first.ID:
			if !r.Approved || r.Status != domain.ResponseAccepted {
				t.Fatalf("winner lost approval: %+v", r)
			}
		case second.ID:
			if r.Approved || r.Status != domain.ResponseRejected {
				t.Fatalf("competitor not rejected: %+v", r)
			}
		}
	}
}

func TestResponseService_Approve_SecondApproveFails(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, bidInput(project.ID, "exec-1"))
	second, _ := svc.Create(ctx, bidInput(project.ID, "exec-2"))

	if _, err := svc.Approve(ctx, first.ID, project.ID, "cust-1"); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if _, err := svc.Approve(ctx, second.ID, project.ID, "cust-1"); !errors.Is(err, domain.ErrResponseState) {
		t.Fatalf("expected ErrResponseState for second approve, got %v", err)
	}

	// Re-approving the winner is an idempotent success.
	again, err := svc.Approve(ctx, first.ID, project.ID, "cust-1")
	if err != nil {
		t.Fatalf("re-approve winner: %v", err)
	}
	if !again.Approved {
		t.Fatalf("winner lost approval: %+v", again)
	}
}

func TestResponseService_Approve_Gating(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	resp, _ := svc.Create(ctx, bidInput(project.ID, "exec-1"))

	if _, err := svc.Approve(ctx, resp.ID, project.ID, "exec-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.Approve(ctx, "missing", project.ID, "cust-1"); !errors.Is(err, domain.ErrResponseNotFound) {
		t.Fatalf("expected ErrResponseNotFound, got %v", err)
	}
}

func TestResponseService_SetStatus(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	resp, _ := svc.Create(ctx, bidInput(project.ID, "exec-1"))

	if _, err := svc.SetStatus(ctx, resp.ID, "cust-1", domain.ResponseAccepted); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for accepted, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, resp.ID, "exec-1", domain.ResponseRejected); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	updated, err := svc.SetStatus(ctx, resp.ID, "cust-1", domain.ResponseRejected)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != domain.ResponseRejected || updated.Approved {
		t.Fatalf("unexpected response: %+v", updated)
	}
}

func TestResponseService_Cancel(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	resp, _ := svc.Create(ctx, bidInput(project.ID, "exec-1"))

	if _, err := svc.Cancel(ctx, resp.ID, "exec-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}

	cancelled, err := svc.Cancel(ctx, resp.ID, "exec-1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != domain.ResponseCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// Only pending responses can be withdrawn.
	if _, err := svc.Cancel(ctx, resp.ID, "exec-1"); !errors.Is(err, domain.ErrResponseState) {
		t.Fatalf("expected ErrResponseState for second cancel, got %v", err)
	}
}

func TestResponseService_CountNewForProject(t *testing.T) {
	svc, project := responseFixture(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, bidInput(project.ID, "exec-1"))
	if _, err := svc.Create(ctx, bidInput(project.ID, "exec-2")); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := svc.CountNewForProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("CountNewForProject: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 new responses, got %d", n)
	}

	if _, err := svc.Approve(ctx, first.ID, project.ID, "cust-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	n, err = svc.CountNewForProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("CountNewForProject: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 new responses after approval, got %d", n)
	}
}
