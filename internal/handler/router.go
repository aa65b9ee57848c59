package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thelab/fan-chat/backend/internal/handler/app"
	"github.com/thelab/fan-chat/backend/internal/handler/chat"
	"github.com/thelab/fan-chat/backend/internal/handler/feedback"
	"github.com/thelab/fan-chat/backend/internal/handler/stream"
	middlewarePkg "github.com/thelab/fan-chat/backend/internal/middleware"
	chatService "github.com/thelab/fan-chat/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services. recorder may be nil when
// feedback recording is not configured.
func NewRouter(info app.Info, chatSvc *chatService.Service, recorder feedback.Submitter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	appHandler := app.New(info)
	chatHandler := chat.New(chatSvc)
	wsHandler := chat.NewWebSocketHandler(chatSvc)
	streamHandler := stream.New(chatSvc)
	feedbackHandler := feedback.New(recorder)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(api chi.Router) {
		appHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		feedbackHandler.RegisterRoutes(api)
	})

	return r
}
