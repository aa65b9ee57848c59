package stream

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatHandler "github.com/thelab/fan-chat/backend/internal/handler/chat"
	chatService "github.com/thelab/fan-chat/backend/internal/service/chat"
	"github.com/thelab/fan-chat/backend/pkg/utils"
)

// Event names written on the stream, in order: start, then message or error, then end.
const (
	EventStart   = "start"
	EventMessage = "message"
	EventError   = "error"
	EventEnd     = "end"
)

// Handler runs chat turns and reports their progress via Server-Sent Events.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a new stream handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// StartEvent acknowledges the user's text before the model is called.
type StartEvent struct {
	SessionID string `json:"sessionId"`
	Content   string `json:"content"`
}

// EndEvent closes a stream.
type EndEvent struct {
	SessionID string `json:"sessionId"`
	Finished  bool   `json:"finished"`
}

// RegisterRoutes registers the streaming turn endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/stream/{sessionID}", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		status, kind := chatHandler.TurnErrorStatus(err)
		utils.RespondErrorKind(w, status, kind, err.Error())
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	utils.SendSSEEvent(w, flusher, EventStart, StartEvent{SessionID: sessionID, Content: payload.Content})

	rendered, err := h.chatSvc.Turn(r.Context(), session, payload.Content)
	if err != nil {
		_, kind := chatHandler.TurnErrorStatus(err)
		utils.SendSSEEvent(w, flusher, EventError, utils.ErrorBody{Error: err.Error(), Kind: kind})
		if !errors.Is(err, chatService.ErrEmptyMessage) {
			log.Printf("[stream] turn failed session=%s kind=%s: %v", sessionID, kind, err)
		}
	} else {
		utils.SendSSEEvent(w, flusher, EventMessage, rendered)
	}

	utils.SendSSEEvent(w, flusher, EventEnd, EndEvent{SessionID: sessionID, Finished: true})
}
