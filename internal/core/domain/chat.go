package domain

import "time"

// Message is a single chat message. Messages are append-only; the Read flag
// is the only mutable field and transitions false→true only for messages
// whose sender is not the reading user.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Chat is a two-party message thread. Exactly one chat exists per unordered
// pair of distinct participant ids.
type Chat struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// IsBetween reports whether the chat connects exactly the unordered pair
// {a, b}.
func (c *Chat) IsBetween(a, b string) bool {
	return c.HasParticipant(a) && c.HasParticipant(b)
}

// UnreadCount counts messages not yet read by readerID. A user's own
// messages are never counted.
func (c *Chat) UnreadCount(readerID string) int {
	n := 0
	for _, m := range c.Messages {
		if m.SenderID != readerID && !m.Read {
			n++
		}
	}
	return n
}
