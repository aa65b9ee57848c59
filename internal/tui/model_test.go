package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	chatService "github.com/thelab/fan-chat/backend/internal/service/chat"
)

type stubResponder struct {
	response chat.Response
	err      error
}

func (s stubResponder) Respond(context.Context, string) (chat.Response, error) {
	return s.response, s.err
}

type stubSubmitter struct {
	calls []string
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, text, mood string) (feedback.Entry, error) {
	s.calls = append(s.calls, text+"|"+mood)
	if s.err != nil {
		return feedback.Entry{}, s.err
	}
	return feedback.Entry{Text: text, Mood: feedback.Mood(mood)}, nil
}

func newTestModel(t *testing.T, responder chatService.Responder, submitter Submitter) (Model, *chatService.Session) {
	t.Helper()
	svc := chatService.NewService(responder)
	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	return New(Options{Session: session, Chatter: svc, Submitter: submitter}), session
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestNewShowsGreeting(t *testing.T) {
	m, _ := newTestModel(t, stubResponder{}, nil)
	assert.Contains(t, m.View(), chat.Greeting)
	assert.Contains(t, m.View(), Title)
}

func TestEnterRunsTurn(t *testing.T) {
	m, session := newTestModel(t, stubResponder{response: chat.TextResponse("42")}, nil)
	m.input.SetValue("what is the answer")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())

	m = deliver(t, m, cmd)
	assert.False(t, m.waiting)
	assert.Empty(t, m.status)

	messages := session.Transcript().All()
	require.Len(t, messages, 3)
	assert.Equal(t, chat.RoleUser, messages[1].Role)
	assert.Equal(t, "what is the answer", messages[1].Content)
	assert.Equal(t, "42", messages[2].Content)
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	m, session := newTestModel(t, stubResponder{response: chat.TextResponse("x")}, nil)
	m.input.SetValue("   ")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
	assert.Len(t, session.Transcript().All(), 1)
}

func TestTableTurnShowsFullTable(t *testing.T) {
	rows := make([][]string, 7)
	for i := range rows {
		rows[i] = []string{"item-" + string(rune('0'+i))}
	}
	table := chat.Table{Columns: []string{"name"}, Rows: rows}
	m, session := newTestModel(t, stubResponder{response: chat.TableResponse(table)}, nil)
	m.input.SetValue("list items")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, cmd)

	assert.Contains(t, m.display, "item-6")
	messages := session.Transcript().All()
	assert.NotContains(t, messages[len(messages)-1].Content, "item-6")
}

func TestTurnFailureShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, stubResponder{err: errors.New("upstream down")}, nil)
	m.input.SetValue("hello")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, cmd)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "upstream down")
}

func TestFeedbackPanelSubmitAndReset(t *testing.T) {
	submitter := &stubSubmitter{}
	m, _ := newTestModel(t, stubResponder{}, submitter)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	require.True(t, m.panelOpen)
	assert.Contains(t, m.View(), string(feedback.Neutral))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("nice")})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, feedback.Neutral, m.form.Mood)
	assert.Equal(t, "nice", m.form.Text)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = deliver(t, m, cmd)

	require.Equal(t, []string{"nice|" + string(feedback.Neutral)}, submitter.calls)
	assert.Equal(t, SubmittedMessage, m.status)
	assert.False(t, m.statusErr)
	assert.Equal(t, feedback.FormSubmitted, m.form.State())
	assert.Equal(t, feedback.DefaultMood, m.form.Mood)
	assert.Empty(t, m.notes.Value())
}

func TestFeedbackFailureKeepsInput(t *testing.T) {
	submitter := &stubSubmitter{err: errors.New("sheet unavailable")}
	m, _ := newTestModel(t, stubResponder{}, submitter)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("meh")})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = deliver(t, m, cmd)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "sheet unavailable")
	assert.Equal(t, "meh", m.form.Text)
}

func TestFeedbackWithoutSubmitter(t *testing.T) {
	m, _ := newTestModel(t, stubResponder{}, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
}

func TestEscClosesPanel(t *testing.T) {
	m, _ := newTestModel(t, stubResponder{}, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.panelOpen)
	assert.False(t, strings.Contains(m.View(), "ctrl+s: submit"))
}
