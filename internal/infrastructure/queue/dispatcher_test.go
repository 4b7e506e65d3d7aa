package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

type captureService struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (s *captureService) Process(_ context.Context, event domain.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureService) snapshot() []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityEvent(nil), s.events...)
}

func waitForEvents(t *testing.T, svc *captureService, want int) []domain.ActivityEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := svc.snapshot()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", want, len(svc.snapshot()))
	return nil
}

func TestDispatcher_ProcessesEvents(t *testing.T) {
	svc := &captureService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.ActivityEvent{Kind: domain.ActivityProjectCreated, EntityID: "project-1"})
	d.Record(domain.ActivityEvent{Kind: domain.ActivityResponseCreated, EntityID: "response-1"})

	events := waitForEvents(t, svc, 2)
	kinds := map[domain.ActivityKind]bool{}
	for _, e := range events {
		kinds[e.Kind] = true
	}
	if !kinds[domain.ActivityProjectCreated] || !kinds[domain.ActivityResponseCreated] {
		t.Fatalf("missing events: %+v", events)
	}
}

func TestDispatcher_PerEntityOrdering(t *testing.T) {
	svc := &captureService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 20
	for i := 0; i < n; i++ {
		d.Record(domain.ActivityEvent{
			Kind:     domain.ActivityProjectUpdated,
			EntityID: "project-1",
			Detail:   fmt.Sprintf("%d", i),
		})
	}

	events := waitForEvents(t, svc, n)
	seq := 0
	for _, e := range events {
		if e.EntityID != "project-1" {
			continue
		}
		if e.Detail != fmt.Sprintf("%d", seq) {
			t.Fatalf("event %d out of order: got detail %q", seq, e.Detail)
		}
		seq++
	}
	if seq != n {
		t.Fatalf("expected %d ordered events, got %d", n, seq)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &captureService{}, zerolog.Nop())

	first := d.shardIndex("project-1")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("project-1"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
