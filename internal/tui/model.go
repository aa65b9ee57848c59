// Package tui is the terminal front-end for the FAN chat: a transcript
// viewport with a single-line prompt and a collapsible feedback panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	chatService "github.com/thelab/fan-chat/backend/internal/service/chat"
)

const (
	Title       = "The Lab - FAN app"
	Placeholder = "What is up?"

	// SubmittedMessage confirms a recorded feedback row.
	SubmittedMessage = "Feedback submitted successfully!"
)

// Chatter runs chat turns for a session.
type Chatter interface {
	Turn(ctx context.Context, session *chatService.Session, text string) (chatService.Rendered, error)
}

// Submitter records feedback rows.
type Submitter interface {
	Submit(ctx context.Context, text, moodLabel string) (feedback.Entry, error)
}

// Options configures a Model.
type Options struct {
	Session   *chatService.Session
	Chatter   Chatter
	Submitter Submitter
	// Timeout bounds every model and spreadsheet call. Zero means no limit.
	Timeout time.Duration
}

type turnDoneMsg struct {
	rendered chatService.Rendered
	err      error
}

type feedbackDoneMsg struct {
	entry feedback.Entry
	err   error
}

// Model is the bubbletea model of the chat screen.
type Model struct {
	session   *chatService.Session
	chatter   Chatter
	submitter Submitter
	timeout   time.Duration

	input    textinput.Model
	viewport viewport.Model
	notes    textarea.Model
	form     *feedback.Form

	panelOpen bool
	waiting   bool
	pending   string
	sending   bool
	display   string
	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the chat screen over an existing session.
func New(opts Options) Model {
	input := textinput.New()
	input.Placeholder = Placeholder
	input.Prompt = "> "
	input.Focus()

	notes := textarea.New()
	notes.Placeholder = "Write your feedback here..."
	notes.ShowLineNumbers = false
	notes.SetHeight(3)

	m := Model{
		session:   opts.Session,
		chatter:   opts.Chatter,
		submitter: opts.Submitter,
		timeout:   opts.Timeout,
		input:     input,
		viewport:  viewport.New(80, 16),
		notes:     notes,
		form:      feedback.NewForm(),
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and finished background calls.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+f":
			return m.togglePanel()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.panelOpen {
			return m.updatePanel(msg)
		}
		if msg.Type == tea.KeyEnter {
			return m.sendTurn()
		}

	case turnDoneMsg:
		m.waiting = false
		m.pending = ""
		m.display = ""
		if msg.err != nil {
			m.setStatus(turnErrorText(msg.err), true)
		} else {
			m.status = ""
			if msg.rendered.Display.Kind == chat.KindTable && msg.rendered.Display.Table != nil {
				table := msg.rendered.Display.Table
				m.display = table.Preview(len(table.Rows))
			}
		}
		m.refresh()
		return m, nil

	case feedbackDoneMsg:
		m.sending = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Feedback failed: %v", msg.err), true)
			return m, nil
		}
		m.form.MarkSubmitted()
		m.notes.Reset()
		m.setStatus(SubmittedMessage, false)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	if !m.waiting {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, ok := msg.(tea.MouseMsg); ok {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) togglePanel() (tea.Model, tea.Cmd) {
	m.panelOpen = !m.panelOpen
	if m.panelOpen {
		m.input.Blur()
		m.layout()
		return m, m.notes.Focus()
	}
	m.notes.Blur()
	m.layout()
	return m, m.input.Focus()
}

func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.togglePanel()
	case "tab":
		m.form.CycleMood(1)
		return m, nil
	case "shift+tab":
		m.form.CycleMood(-1)
		return m, nil
	case "ctrl+s":
		return m.sendFeedback()
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	m.form.SetText(m.notes.Value())
	return m, cmd
}

func (m Model) sendTurn() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if m.waiting || strings.TrimSpace(text) == "" {
		return m, nil
	}
	m.input.Reset()
	m.waiting = true
	m.pending = text
	m.status = ""
	m.display = ""
	m.refresh()

	chatter, session, timeout := m.chatter, m.session, m.timeout
	return m, func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		rendered, err := chatter.Turn(ctx, session, text)
		return turnDoneMsg{rendered: rendered, err: err}
	}
}

func (m Model) sendFeedback() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}
	if m.submitter == nil {
		m.setStatus("Feedback is not configured.", true)
		return m, nil
	}
	m.sending = true
	m.status = ""

	submitter, timeout := m.submitter, m.timeout
	text, mood := m.form.Text, string(m.form.Mood)
	return m, func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		entry, err := submitter.Submit(ctx, text, mood)
		return feedbackDoneMsg{entry: entry, err: err}
	}
}

func callContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) layout() {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	// title, blank, prompt, status, help
	reserved := 6
	if m.panelOpen {
		reserved += m.notes.Height() + 6
	}
	height := m.height - reserved
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.input.Width = width - 4
	m.notes.SetWidth(width - 4)
}

func (m *Model) refresh() {
	var b strings.Builder
	var messages []chat.Message
	if m.session != nil {
		messages = m.session.Transcript().All()
	}
	b.WriteString(renderMessages(messages))
	if m.waiting {
		// The turn may already have recorded the pending text.
		if n := len(messages); n == 0 || messages[n-1].Role != chat.RoleUser || messages[n-1].Content != m.pending {
			b.WriteString("\n\n")
			b.WriteString(UserStyle.Render("You: ") + m.pending)
		}
		b.WriteString("\n\n")
		b.WriteString(DimStyle.Render("Thinking..."))
	}
	if m.display != "" {
		b.WriteString("\n\n")
		b.WriteString(m.display)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the chat screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(Title))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.panelOpen {
		b.WriteString(m.panelView())
		b.WriteString("\n")
	}

	if m.status != "" {
		style := SuccessStyle
		if m.statusErr {
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	help := "enter: send · ctrl+f: feedback · ctrl+c: quit"
	if m.panelOpen {
		help = "tab/shift+tab: mood · ctrl+s: submit · esc: close"
	}
	b.WriteString(DimStyle.Render(help))
	return b.String()
}

func (m Model) panelView() string {
	moods := make([]string, 0, len(m.form.Moods))
	for _, mood := range m.form.Moods {
		if mood == m.form.Mood {
			moods = append(moods, SelectedMoodStyle.Render(string(mood)))
			continue
		}
		moods = append(moods, DimStyle.Render(string(mood)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		"Feedback",
		m.notes.View(),
		strings.Join(moods, "  "),
	)
	if m.sending {
		body = lipgloss.JoinVertical(lipgloss.Left, body, DimStyle.Render("Submitting..."))
	}
	return PanelStyle.Render(body)
}

func renderMessages(messages []chat.Message) string {
	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		prefix := AssistantStyle.Render("FAN: ")
		if msg.Role == chat.RoleUser {
			prefix = UserStyle.Render("You: ")
		}
		blocks = append(blocks, prefix+msg.Content)
	}
	return strings.Join(blocks, "\n\n")
}

func turnErrorText(err error) string {
	var clientErr *chatService.ClientError
	switch {
	case errors.Is(err, chatService.ErrResponderUnavailable):
		return "The language model is not configured."
	case errors.Is(err, chatService.ErrUnrecognizedResponse):
		return "The model replied with something that is neither text nor a table."
	case errors.As(err, &clientErr):
		return fmt.Sprintf("The language model call failed: %v", clientErr.Err)
	default:
		return err.Error()
	}
}
