package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	feedbackService "github.com/thelab/fan-chat/backend/internal/service/feedback"
	"github.com/thelab/fan-chat/backend/pkg/utils"
)

// SuccessMessage is shown after a row was recorded.
const SuccessMessage = "Feedback submitted successfully!"

// Submitter records one feedback entry.
type Submitter interface {
	Submit(ctx context.Context, text, moodLabel string) (feedback.Entry, error)
}

// Handler serves the feedback form.
type Handler struct {
	recorder Submitter
}

// New creates the feedback handler. A nil recorder makes submissions answer 503.
func New(recorder Submitter) *Handler {
	return &Handler{recorder: recorder}
}

// RegisterRoutes registers feedback routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/feedback/form", h.handleForm)
	r.Post("/feedback", h.handleSubmit)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, feedback.NewForm())
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
		Mood string `json:"mood"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if h.recorder == nil {
		utils.RespondErrorKind(w, http.StatusServiceUnavailable, "unavailable", "feedback recording is not configured")
		return
	}

	entry, err := h.recorder.Submit(r.Context(), payload.Text, payload.Mood)
	if err != nil {
		var recErr *feedbackService.RecorderError
		switch {
		case errors.Is(err, feedback.ErrInvalidMood):
			utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_mood", err.Error())
		case errors.As(err, &recErr):
			utils.RespondErrorKind(w, http.StatusBadGateway, "recorder_error", err.Error())
		default:
			utils.RespondErrorKind(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"status":  "submitted",
		"message": SuccessMessage,
		"entry":   entry,
		"form":    feedback.NewForm(),
	})
}
