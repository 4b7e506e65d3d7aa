package ports

import (
	"context"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// ChatService is the chat registry: two-party threads keyed by the unordered
// participant pair.
type ChatService interface {
	GetOrCreate(ctx context.Context, selfID, otherID string) (*domain.Chat, error)
	Get(ctx context.Context, chatID, callerID string) (*domain.Chat, error)
	SendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Chat, error)
	CountUnread(ctx context.Context, chatID, readerID string) (int, error)
	MarkRead(ctx context.Context, chatID, readerID string) error
}
