package chat

import (
	"sync"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
)

// Transcript is the append-only message history of one session.
type Transcript struct {
	mu       sync.RWMutex
	messages []chat.Message
}

// NewTranscript returns a transcript seeded with the assistant greeting.
func NewTranscript() *Transcript {
	messages := make([]chat.Message, 0, 16)
	messages = append(messages, chat.AssistantMessage(chat.Greeting))
	return &Transcript{messages: messages}
}

// Append adds a message at the end.
func (t *Transcript) Append(message chat.Message) {
	t.mu.Lock()
	t.messages = append(t.messages, message)
	t.mu.Unlock()
}

// All returns a copy of every message in display order.
func (t *Transcript) All() []chat.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]chat.Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// Len reports how many messages have been recorded.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
