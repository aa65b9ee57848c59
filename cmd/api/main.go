package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thelab/fan-chat/backend/internal/config"
	"github.com/thelab/fan-chat/backend/internal/handler"
	"github.com/thelab/fan-chat/backend/internal/handler/app"
	feedbackHandler "github.com/thelab/fan-chat/backend/internal/handler/feedback"
	"github.com/thelab/fan-chat/backend/internal/service/ai"
	"github.com/thelab/fan-chat/backend/internal/service/chat"
	"github.com/thelab/fan-chat/backend/internal/service/feedback"
	"github.com/thelab/fan-chat/backend/internal/service/sheets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	info := app.DefaultInfo()

	var responder chat.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the ARK_* environment variables")
		} else {
			responder = aiService
			info.AIEnabled = true
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("language model credentials not configured, chat turns will be rejected")
	}

	chatService := chat.NewService(responder)
	go pruneSessions(ctx, chatService, cfg.Chat.IdleTimeout)

	var recorder feedbackHandler.Submitter
	if cfg.Sheets.Enabled() {
		recorder = feedback.NewRecorder(
			sheets.NewClient(cfg.Sheets.Credentials),
			feedback.Target{URL: cfg.Sheets.SpreadsheetURL, Worksheet: cfg.Sheets.Worksheet},
			cfg.Sheets.ReadBack,
		)
		info.FeedbackEnabled = true
		log.Printf("feedback recorder targeting worksheet %q", cfg.Sheets.Worksheet)
	} else {
		log.Println("service account credentials not configured, feedback submissions will be rejected")
	}

	router := handler.NewRouter(info, chatService, recorder)

	startServer(ctx, cfg.Server, router)
}

// pruneSessions periodically ends sessions nobody has used for maxIdle.
func pruneSessions(ctx context.Context, svc *chat.Service, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}

	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.PruneIdle(maxIdle)
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("FAN chat backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
