package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thelab/fan-chat/backend/internal/model/chat"
)

// Session owns the transcript of one interactive conversation.
type Session struct {
	ID        string
	CreatedAt time.Time

	transcript *Transcript

	// turnMu admits one chat turn at a time.
	turnMu sync.Mutex

	activeMu   sync.Mutex
	lastActive time.Time
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now.UTC(),
		transcript: NewTranscript(),
		lastActive: now,
	}
}

// Transcript exposes the session history.
func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Info summarizes the session together with its messages.
func (s *Session) Info() chat.SessionInfo {
	return chat.SessionInfo{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Messages:  s.transcript.All(),
	}
}

func (s *Session) touch(now time.Time) {
	s.activeMu.Lock()
	s.lastActive = now
	s.activeMu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	return s.lastActive
}
