package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// pairLockStub counts acquisitions and releases.
type pairLockStub struct {
	acquired int
	released int
}

func (l *pairLockStub) Acquire(_ context.Context, _, _ string) (func(), error) {
	l.acquired++
	return func() { l.released++ }, nil
}

func TestChatService_GetOrCreate_Validation(t *testing.T) {
	svc := NewChatService(newMemStore(), nil, nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.GetOrCreate(ctx, "", "user-2"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty id, got %v", err)
	}
	if _, err := svc.GetOrCreate(ctx, "user-1", "user-1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for self chat, got %v", err)
	}
}

func TestChatService_GetOrCreate_UnorderedPair(t *testing.T) {
	lock := &pairLockStub{}
	svc := NewChatService(newMemStore(), lock, nil, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "user-1", "user-2")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	// The reversed pair resolves to the same chat.
	second, err := svc.GetOrCreate(ctx, "user-2", "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate reversed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one chat for the pair, got %s and %s", first.ID, second.ID)
	}

	chats, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("expected 1 chat, got %d", len(chats))
	}

	if lock.acquired != 2 || lock.released != 2 {
		t.Fatalf("pair lock not balanced: acquired=%d released=%d", lock.acquired, lock.released)
	}
}

func TestChatService_Get_ParticipantGating(t *testing.T) {
	svc := NewChatService(newMemStore(), nil, nil, zerolog.Nop())
	ctx := context.Background()

	chat, err := svc.GetOrCreate(ctx, "user-1", "user-2")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if _, err := svc.Get(ctx, chat.ID, "user-3"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := svc.Get(ctx, "missing", "user-1"); !errors.Is(err, domain.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, chat.ID, "user-2"); err != nil {
		t.Fatalf("participant read failed: %v", err)
	}
}

func TestChatService_SendMessage_AppendOrder(t *testing.T) {
	svc := NewChatService(newMemStore(), nil, nil, zerolog.Nop())
	ctx := context.Background()

	chat, err := svc.GetOrCreate(ctx, "user-1", "user-2")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if _, err := svc.SendMessage(ctx, chat.ID, "user-1", "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank content, got %v", err)
	}
	if _, err := svc.SendMessage(ctx, chat.ID, "user-3", "hi"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.SendMessage(ctx, chat.ID, "user-1", content); err != nil {
			t.Fatalf("SendMessage(%q): %v", content, err)
		}
	}

	got, err := svc.Get(ctx, chat.ID, "user-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got.Messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got.Messages[i].Content != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, got.Messages[i].Content)
		}
	}
}

func TestChatService_UnreadAndMarkRead(t *testing.T) {
	svc := NewChatService(newMemStore(), nil, nil, zerolog.Nop())
	ctx := context.Background()

	chat, err := svc.GetOrCreate(ctx, "user-1", "user-2")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if _, err := svc.SendMessage(ctx, chat.ID, "user-1", "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, err := svc.SendMessage(ctx, chat.ID, "user-1", "anyone there?"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	// The sender's own messages never count as unread for them.
	n, err := svc.CountUnread(ctx, chat.ID, "user-1")
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 unread for sender, got %d", n)
	}

	n, err = svc.CountUnread(ctx, chat.ID, "user-2")
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 unread for recipient, got %d", n)
	}

	if err := svc.MarkRead(ctx, chat.ID, "user-2"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	n, _ = svc.CountUnread(ctx, chat.ID, "user-2")
	if n != 0 {
		t.Fatalf("expected 0 unread after MarkRead, got %d", n)
	}

	// Idempotent; a second call is a no-op.
	if err := svc.MarkRead(ctx, chat.ID, "user-2"); err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}

	if err := svc.MarkRead(ctx, chat.ID, "user-3"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
}
