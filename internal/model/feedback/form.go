package feedback

import "strings"

// FormState tracks the feedback panel lifecycle.
type FormState string

const (
	FormEmpty     FormState = "empty"
	FormFilled    FormState = "filled"
	FormSubmitted FormState = "submitted"
)

// Form holds the panel inputs between renders.
type Form struct {
	Text      string `json:"text"`
	Mood      Mood   `json:"mood"`
	Moods     []Mood `json:"moods"`
	submitted bool
}

// NewForm returns an empty form with the default mood selected.
func NewForm() *Form {
	return &Form{Mood: DefaultMood, Moods: Moods()}
}

// SetText records typed feedback.
func (f *Form) SetText(text string) {
	f.Text = text
	f.submitted = false
}

// SelectMood moves the selector to the given option.
func (f *Form) SelectMood(m Mood) {
	f.Mood = m
	f.submitted = false
}

// CycleMood advances the selector by step positions, wrapping around.
func (f *Form) CycleMood(step int) {
	moods := Moods()
	idx := 0
	for i, m := range moods {
		if m == f.Mood {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(moods) + len(moods)) % len(moods)
	f.SelectMood(moods[idx])
}

// State reports where the form is in its lifecycle.
func (f *Form) State() FormState {
	switch {
	case f.submitted:
		return FormSubmitted
	case strings.TrimSpace(f.Text) != "" || f.Mood != DefaultMood:
		return FormFilled
	default:
		return FormEmpty
	}
}

// MarkSubmitted clears the inputs after a successful submission.
func (f *Form) MarkSubmitted() {
	f.Text = ""
	f.Mood = DefaultMood
	f.submitted = true
}

// Reset returns the form to its initial, empty state.
func (f *Form) Reset() {
	f.Text = ""
	f.Mood = DefaultMood
	f.submitted = false
}
