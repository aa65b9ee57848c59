package chat

import (
	"errors"
	"fmt"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrUnrecognizedResponse = chat.ErrUnrecognizedResponse
	ErrResponderUnavailable = errors.New("language model unavailable")
)

// ClientError reports a failed language model call.
type ClientError struct {
	Err error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("language model request failed: %v", e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}
