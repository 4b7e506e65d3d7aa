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

// ChatService is the chat registry. The in-process mutex serializes all
// mutations; GetOrCreate additionally takes the cross-process pair lock so
// two concurrent processes cannot create duplicate chats for one pair.
type ChatService struct {
	mu     sync.Mutex
	loaded bool
	chats  []domain.Chat

	store    ports.SnapshotStore
	pairLock ports.PairLock
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

// NewChatService builds the registry. pairLock may be nil in single-process
// setups (and tests); the in-process mutex still applies.
func NewChatService(store ports.SnapshotStore, pairLock ports.PairLock, activity ports.ActivityRecorder, logger zerolog.Logger) *ChatService {
	return &ChatService{store: store, pairLock: pairLock, activity: activity, logger: logger}
}

// Load reads the snapshot into memory; safe to call more than once.
func (s *ChatService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked(ctx)
}

func (s *ChatService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	data, err := s.store.Load(ctx, ports.KeyChats)
	if err != nil {
		return fmt.Errorf("load chats: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.chats); err != nil {
			return fmt.Errorf("decode chats: %w", err)
		}
	}
	s.loaded = true
	return nil
}

func (s *ChatService) saveLocked(ctx context.Context, updated []domain.Chat) error {
	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encode chats: %w", err)
	}
	if err := s.store.Save(ctx, ports.KeyChats, data); err != nil {
		return fmt.Errorf("save chats: %w", err)
	}
	s.chats = updated
	return nil
}

// GetOrCreate returns the chat for the unordered pair {selfID, otherID},
// creating it on first use. The pair order does not matter: (a,b) and (b,a)
// resolve to the same chat.
func (s *ChatService) GetOrCreate(ctx context.Context, selfID, otherID string) (*domain.Chat, error) {
	if selfID == "" || otherID == "" {
		return nil, fmt.Errorf("%w: both participant ids are required", domain.ErrValidation)
	}
	if selfID == otherID {
		return nil, fmt.Errorf("%w: cannot open a chat with yourself", domain.ErrValidation)
	}

	if s.pairLock != nil {
		release, err := s.pairLock.Acquire(ctx, selfID, otherID)
		if err != nil {
			return nil, fmt.Errorf("acquire pair lock: %w", err)
		}
		defer release()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	for i := range s.chats {
		if s.chats[i].IsBetween(selfID, otherID) {
			chat := s.chats[i]
			return &chat, nil
		}
	}

	chat := domain.Chat{
		ID:           uuid.NewString(),
		Participants: []string{selfID, otherID},
		Messages:     []domain.Message{},
		CreatedAt:    time.Now().UTC(),
	}
	updated := append(append([]domain.Chat(nil), s.chats...), chat)
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("chat_id", chat.ID).Str("self_id", selfID).Str("other_id", otherID).Msg("chat created")
	return &chat, nil
}

// Get returns a chat the caller participates in.
func (s *ChatService) Get(ctx context.Context, chatID, callerID string) (*domain.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(chatID)
	if idx < 0 {
		return nil, domain.ErrChatNotFound
	}
	if !s.chats[idx].HasParticipant(callerID) {
		return nil, fmt.Errorf("%w: not a chat participant", domain.ErrForbidden)
	}
	chat := s.chats[idx]
	return &chat, nil
}

// SendMessage appends a message to the chat. Messages are observed in append
// order by all readers.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.indexLocked(chatID)
	if idx < 0 {
		return nil, domain.ErrChatNotFound
	}
	if !s.chats[idx].HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: not a chat participant", domain.ErrForbidden)
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}

	updated := append([]domain.Chat(nil), s.chats...)
	chat := updated[idx]
	chat.Messages = append(append([]domain.Message(nil), chat.Messages...), msg)
	updated[idx] = chat
	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}

	metrics.ChatMessagesSentTotal.Inc()
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityMessageSent,
		EntityID:  chatID,
		ActorID:   senderID,
		Timestamp: msg.Timestamp,
	})
	return &msg, nil
}

// ListForUser returns the chats the user participates in.
func (s *ChatService) ListForUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	var matched []domain.Chat
	for _, c := range s.chats {
		if c.HasParticipant(userID) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// CountUnread counts messages from the other participant that the reader
// has not yet marked read.
func (s *ChatService) CountUnread(ctx context.Context, chatID, readerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	idx := s.indexLocked(chatID)
	if idx < 0 {
		return 0, domain.ErrChatNotFound
	}
	return s.chats[idx].UnreadCount(readerID), nil
}

// MarkRead flags every foreign message in the chat as read. Idempotent; the
// reader's own messages are never touched.
func (s *ChatService) MarkRead(ctx context.Context, chatID, readerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := s.indexLocked(chatID)
	if idx < 0 {
		return domain.ErrChatNotFound
	}
	if !s.chats[idx].HasParticipant(readerID) {
		return fmt.Errorf("%w: not a chat participant", domain.ErrForbidden)
	}

	updated := append([]domain.Chat(nil), s.chats...)
	chat := updated[idx]
	msgs := append([]domain.Message(nil), chat.Messages...)
	changed := false
	for i := range msgs {
		if msgs[i].SenderID != readerID && !msgs[i].Read {
			msgs[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	chat.Messages = msgs
	updated[idx] = chat
	return s.saveLocked(ctx, updated)
}

func (s *ChatService) record(event domain.ActivityEvent) {
	if s.activity != nil {
		s.activity.Record(event)
	}
}

func (s *ChatService) indexLocked(id string) int {
	for i := range s.chats {
		if s.chats[i].ID == id {
			return i
		}
	}
	return -1
}
