package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatService "github.com/thelab/fan-chat/backend/internal/service/chat"
	"github.com/thelab/fan-chat/backend/pkg/utils"
)

// Handler serves session and chat turn endpoints.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}", func(r chi.Router) {
		r.Delete("/", h.handleEndSession)
		r.Get("/messages", h.handleListMessages)
		r.Post("/messages", h.handleSendMessage)
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session.Info())
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondTurnError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	rendered, err := h.chatSvc.HandleTurn(r.Context(), chi.URLParam(r, "sessionID"), payload.Content)
	if err != nil {
		respondTurnError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rendered)
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondTurnError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TurnErrorStatus maps chat failures onto an HTTP status and error kind.
func TurnErrorStatus(err error) (int, string) {
	var clientErr *chatService.ClientError
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, chatService.ErrEmptyMessage):
		return http.StatusBadRequest, "empty_message"
	case errors.Is(err, chatService.ErrResponderUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, chatService.ErrUnrecognizedResponse):
		return http.StatusBadGateway, "unrecognized_response"
	case errors.As(err, &clientErr):
		return http.StatusBadGateway, "client_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondTurnError(w http.ResponseWriter, err error) {
	status, kind := TurnErrorStatus(err)
	utils.RespondErrorKind(w, status, kind, err.Error())
}
