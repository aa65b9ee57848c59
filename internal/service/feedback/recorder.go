package feedback

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	"github.com/thelab/fan-chat/backend/internal/service/sheets"
)

// Opener resolves the spreadsheet tab that receives feedback rows.
type Opener interface {
	Open(ctx context.Context, url, worksheet string) (sheets.Worksheet, error)
}

// Target identifies the feedback sheet.
type Target struct {
	URL       string
	Worksheet string
}

// RecorderError reports a failed authorization or append. No row was written.
type RecorderError struct {
	Op  string
	Err error
}

func (e *RecorderError) Error() string {
	return fmt.Sprintf("feedback %s failed: %v", e.Op, e.Err)
}

func (e *RecorderError) Unwrap() error {
	return e.Err
}

// Recorder appends feedback entries to the target spreadsheet.
type Recorder struct {
	opener   Opener
	target   Target
	readBack bool
	now      func() time.Time
}

// NewRecorder wires a recorder. With readBack set, every successful submit
// logs the sheet contents for diagnostics.
func NewRecorder(opener Opener, target Target, readBack bool) *Recorder {
	return &Recorder{
		opener:   opener,
		target:   target,
		readBack: readBack,
		now:      time.Now,
	}
}

// Submit validates the mood, stamps the entry and appends it as one row.
func (r *Recorder) Submit(ctx context.Context, text, moodLabel string) (feedback.Entry, error) {
	mood, err := feedback.ParseMood(moodLabel)
	if err != nil {
		return feedback.Entry{}, err
	}

	entry := feedback.NewEntry(text, mood, r.now())

	worksheet, err := r.opener.Open(ctx, r.target.URL, r.target.Worksheet)
	if err != nil {
		log.Printf("[feedback] open %s failed: %v", r.target.Worksheet, err)
		return feedback.Entry{}, &RecorderError{Op: "open", Err: err}
	}

	if err := worksheet.AppendRow(ctx, entry.Row()); err != nil {
		log.Printf("[feedback] append failed: %v", err)
		return feedback.Entry{}, &RecorderError{Op: "append", Err: err}
	}

	log.Printf("[feedback] recorded mood=%s date=%s time=%s", mood.Code(), entry.Date, entry.Time)

	if r.readBack {
		r.logRows(ctx, worksheet)
	}
	return entry, nil
}

func (r *Recorder) logRows(ctx context.Context, worksheet sheets.Worksheet) {
	rows, err := worksheet.Rows(ctx)
	if err != nil {
		log.Printf("[feedback] read back failed: %v", err)
		return
	}
	for _, row := range rows {
		log.Printf("[feedback] row %v", row)
	}
}
