package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	"github.com/thelab/fan-chat/backend/pkg/utils"
)

// Info is the static copy the chat page renders around the transcript.
type Info struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	InputPlaceholder string          `json:"inputPlaceholder"`
	Greeting         string          `json:"greeting"`
	FeedbackTitle    string          `json:"feedbackTitle"`
	FeedbackPrompt   string          `json:"feedbackPrompt"`
	MoodPrompt       string          `json:"moodPrompt"`
	Moods            []feedback.Mood `json:"moods"`
	AIEnabled        bool            `json:"aiEnabled"`
	FeedbackEnabled  bool            `json:"feedbackEnabled"`
}

// DefaultInfo returns the page copy.
func DefaultInfo() Info {
	return Info{
		Title: "The Lab - FAN app",
		Description: "Welcome to our proof of concept chatbot. The aim of this project is to make datasets talk by holding a " +
			"conversation with a chatbot using natural language processing techniques and getting insights out of data in the " +
			"process. Feel free to mess with the chatbot and experiment with it. As of now, our chatbot is capable of suggesting " +
			"topics based on the datasets available to it. It can also find datasets the best fit a topic or subject you are " +
			"interested in if it is available. The chatbot will show you the selected dataset if asked to and is able to preform " +
			"analytics operations on the datasets. As of now the chatbot is still unable to provide graphs or visual aids but we " +
			"are working on implementing this feature as soon as possible.",
		InputPlaceholder: "What is up?",
		Greeting:         chat.Greeting,
		FeedbackTitle:    "Feedback Form",
		FeedbackPrompt:   "Please provide your feedback here:",
		MoodPrompt:       "How was your experience?",
		Moods:            feedback.Moods(),
	}
}

// Handler serves the page copy.
type Handler struct {
	info Info
}

// New creates the app handler.
func New(info Info) *Handler {
	return &Handler{info: info}
}

// RegisterRoutes registers app routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/app", h.handleInfo)
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.info)
}
