package feedback

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Mood is one option of the "How was your experience?" selector.
type Mood string

const (
	Happy        Mood = "😀 Happy"
	Neutral      Mood = "😐 Neutral"
	Dissatisfied Mood = "😒 Dissatisfied"
	Angry        Mood = "😠 Angry"
)

// DefaultMood is preselected every time the form is rendered.
const DefaultMood = Happy

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// ErrInvalidMood is returned for labels outside the fixed option set.
var ErrInvalidMood = errors.New("invalid mood")

// Moods lists the selector options in display order.
func Moods() []Mood {
	return []Mood{Happy, Neutral, Dissatisfied, Angry}
}

// ParseMood accepts only one of the four fixed labels.
func ParseMood(label string) (Mood, error) {
	for _, m := range Moods() {
		if string(m) == label {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMood, label)
}

// Code is the stored single-symbol form of the mood: the label's first code point.
// A whole rune is taken so multi-byte emoji are never split.
func (m Mood) Code() string {
	r, _ := utf8.DecodeRuneInString(string(m))
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}

// Entry is one submitted feedback record.
type Entry struct {
	Text string `json:"text"`
	Mood Mood   `json:"mood"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// NewEntry stamps text and mood with the local date and time of at.
func NewEntry(text string, mood Mood, at time.Time) Entry {
	local := at.Local()
	return Entry{
		Text: text,
		Mood: mood,
		Date: local.Format(dateLayout),
		Time: local.Format(timeLayout),
	}
}

// Row is the spreadsheet layout: feedback text, mood code, date, time.
func (e Entry) Row() []string {
	return []string{e.Text, e.Mood.Code(), e.Date, e.Time}
}
