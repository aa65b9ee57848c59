// sheetcheck inspects and exercises the feedback spreadsheet from the command line.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/thelab/fan-chat/backend/internal/config"
	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	feedbackService "github.com/thelab/fan-chat/backend/internal/service/feedback"
	"github.com/thelab/fan-chat/backend/internal/service/sheets"
)

var (
	timeout   time.Duration
	worksheet string
	moodLabel string
)

var rootCmd = &cobra.Command{
	Use:           "sheetcheck",
	Short:         "Inspect the feedback spreadsheet",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print every feedback row",
	Args:  cobra.NoArgs,
	RunE:  runRows,
}

var submitCmd = &cobra.Command{
	Use:   "submit [text]",
	Short: "Submit one feedback entry",
	Long: `Submit a feedback entry through the same recorder the API uses.
The mood must be one of the selector labels, e.g. "😀 Happy".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List accepted mood labels and their stored codes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range feedback.Moods() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Code(), m)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.PersistentFlags().StringVar(&worksheet, "worksheet", "", "worksheet name (defaults to SHEETS_WORKSHEET)")
	submitCmd.Flags().StringVar(&moodLabel, "mood", string(feedback.DefaultMood), "mood label")

	rootCmd.AddCommand(rowsCmd, submitCmd, moodsCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadSheets() (config.SheetsConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.SheetsConfig{}, fmt.Errorf("load configuration: %w", err)
	}
	if !cfg.Sheets.Enabled() {
		return config.SheetsConfig{}, fmt.Errorf("set GCP_SERVICE_ACCOUNT_JSON or GCP_SERVICE_ACCOUNT_FILE first")
	}
	if worksheet != "" {
		cfg.Sheets.Worksheet = worksheet
	}
	return cfg.Sheets, nil
}

func runRows(cmd *cobra.Command, args []string) error {
	sheetsCfg, err := loadSheets()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	ws, err := sheets.NewClient(sheetsCfg.Credentials).Open(ctx, sheetsCfg.SpreadsheetURL, sheetsCfg.Worksheet)
	if err != nil {
		return err
	}
	rows, err := ws.Rows(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
	fmt.Fprintf(out, "%d rows\n", len(rows))
	return nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	sheetsCfg, err := loadSheets()
	if err != nil {
		return err
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	recorder := feedbackService.NewRecorder(
		sheets.NewClient(sheetsCfg.Credentials),
		feedbackService.Target{URL: sheetsCfg.SpreadsheetURL, Worksheet: sheetsCfg.Worksheet},
		sheetsCfg.ReadBack,
	)
	entry, err := recorder.Submit(ctx, text, moodLabel)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "recorded %q\n", entry.Row())
	return nil
}
