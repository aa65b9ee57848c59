// chat runs the FAN conversation in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/thelab/fan-chat/backend/internal/config"
	"github.com/thelab/fan-chat/backend/internal/service/ai"
	"github.com/thelab/fan-chat/backend/internal/service/chat"
	"github.com/thelab/fan-chat/backend/internal/service/feedback"
	"github.com/thelab/fan-chat/backend/internal/service/sheets"
	"github.com/thelab/fan-chat/backend/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	// Log lines would tear the alt screen; send them to a file when asked.
	log.SetOutput(io.Discard)
	if path := os.Getenv("CHAT_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "chat")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx := context.Background()

	var responder chat.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			return fmt.Errorf("initialize language model: %w", err)
		}
		responder = aiService
	} else {
		log.Println("language model credentials not configured, chat turns will be rejected")
	}

	svc := chat.NewService(responder)
	session, err := svc.CreateSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = svc.EndSession(ctx, session.ID) }()

	opts := tui.Options{
		Session: session,
		Chatter: svc,
		Timeout: 2 * time.Minute,
	}
	if cfg.Sheets.Enabled() {
		opts.Submitter = feedback.NewRecorder(
			sheets.NewClient(cfg.Sheets.Credentials),
			feedback.Target{URL: cfg.Sheets.SpreadsheetURL, Worksheet: cfg.Sheets.Worksheet},
			cfg.Sheets.ReadBack,
		)
	}

	program := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}
