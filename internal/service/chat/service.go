package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
)

// Responder is the language model client consumed by the chat loop.
type Responder interface {
	Respond(ctx context.Context, prompt string) (chat.Response, error)
}

// Rendered is the outcome of one turn: the transcript entry plus what to display.
// Display carries the full table when the reply was tabular.
type Rendered struct {
	Message chat.Message  `json:"message"`
	Display chat.Response `json:"display"`
}

// Service keeps the live sessions and runs chat turns against them.
type Service struct {
	responder Responder
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService bootstraps the in-memory session registry. A nil responder
// leaves sessions usable for reading while turns fail with ErrResponderUnavailable.
func NewService(responder Responder) *Service {
	return &Service{
		responder: responder,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// CreateSession starts a conversation with a freshly seeded transcript.
func (s *Service) CreateSession(_ context.Context) (*Session, error) {
	session := newSession(s.now())

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("[chat] session created id=%s", session.ID)
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns the messages of the provided session.
func (s *Service) LoadTranscript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript().All(), nil
}

// EndSession discards a session and its transcript.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	log.Printf("[chat] session ended id=%s", sessionID)
	return nil
}

// PruneIdle ends every session inactive for longer than maxIdle and reports how many were removed.
func (s *Service) PruneIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[chat] pruned %d idle sessions", removed)
	}
	return removed
}

// HandleTurn resolves the session and runs one chat turn in it.
func (s *Service) HandleTurn(ctx context.Context, sessionID, text string) (Rendered, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return Rendered{}, err
	}
	return s.Turn(ctx, session, text)
}

// Turn records the user's text, asks the language model, and records the reply.
// The user message stays in the transcript even when the model call fails.
func (s *Service) Turn(ctx context.Context, session *Session, text string) (Rendered, error) {
	if strings.TrimSpace(text) == "" {
		return Rendered{}, ErrEmptyMessage
	}
	if s.responder == nil {
		return Rendered{}, ErrResponderUnavailable
	}

	session.turnMu.Lock()
	defer session.turnMu.Unlock()
	session.touch(s.now())

	transcript := session.Transcript()
	transcript.Append(chat.UserMessage(text))

	response, err := s.responder.Respond(ctx, text)
	if err != nil {
		log.Printf("[chat] language model failed session=%s: %v", session.ID, err)
		if errors.Is(err, ErrUnrecognizedResponse) {
			return Rendered{}, err
		}
		return Rendered{}, &ClientError{Err: err}
	}

	content, err := displayContent(response)
	if err != nil {
		log.Printf("[chat] session=%s: %v", session.ID, err)
		return Rendered{}, err
	}

	message := chat.AssistantMessage(content)
	transcript.Append(message)
	session.touch(s.now())

	log.Printf("[chat] turn completed session=%s kind=%s length=%d", session.ID, response.Kind, len(content))
	return Rendered{Message: message, Display: response}, nil
}

// displayContent converts a model reply into the text kept in the transcript.
func displayContent(response chat.Response) (string, error) {
	switch response.Kind {
	case chat.KindText:
		return response.Text, nil
	case chat.KindTable:
		if response.Table == nil {
			return "", fmt.Errorf("%w: table reply without data", ErrUnrecognizedResponse)
		}
		return "```\n" + response.Table.Preview(chat.PreviewRows) + "\n```", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedResponse, response.Kind)
	}
}
