// Package tui is the terminal chat front end. The transcript lives only
// in this model; each question is sent to the server on its own.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"legal-rag/internal/models"
)

// Asker is the TUI-facing subset of the chat API.
type Asker interface {
	Ask(question string) (*models.Answer, error)
}

// Message is a single turn in the session transcript.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
	Sources []models.Source
	At      time.Time
}

// Model is the Bubble Tea model for the chat client.
type Model struct {
	client      Asker
	input       textinput.Model
	viewport    viewport.Model
	transcript  []Message
	status      string
	showSources bool
	ready       bool
	waiting     bool
}

// answerMsg delivers the server response for an in-flight question.
type answerMsg struct {
	answer *models.Answer
	err    error
}

// ask runs the HTTP round trip off the update loop so the UI stays
// responsive while the server thinks.
func ask(client Asker, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.Ask(question)
		return answerMsg{answer: answer, err: err}
	}
}

// New creates a new chat model instance.
func New(client Asker) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the bylaws and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{client: client, input: ti, viewport: vp, status: "Connected. Type a question."}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chatBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		vh := msg.Height - qh - rh - 3 // header, status, spacer
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.transcript = append(m.transcript, Message{
				Role:    "assistant",
				Content: msg.answer.Response,
				Sources: msg.answer.Sources,
				At:      time.Now(),
			})
			m.status = fmt.Sprintf("Answered with %d supporting excerpts", len(msg.answer.Sources))
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.waiting {
				break
			}
			m.transcript = append(m.transcript, Message{Role: "user", Content: q, At: time.Now()})
			m.input.Reset()
			m.waiting = true
			m.status = "Waiting for answer..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, ask(m.client, q)
		case "ctrl+s":
			m.showSources = !m.showSources
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Legal Document Chat")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status + "  (ctrl+s: toggle sources, ctrl+c: quit)")
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	var b strings.Builder
	for _, msg := range m.transcript {
		label := userStyle.Render("You")
		if msg.Role == "assistant" {
			label = assistantStyle.Render("Assistant")
		}
		b.WriteString(label + "  " + msg.At.Format("15:04:05") + "\n")
		b.WriteString(msg.Content + "\n")
		if m.showSources && len(msg.Sources) > 0 {
			b.WriteString(sourceStyle.Render(renderSources(msg.Sources)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderSources(sources []models.Source) string {
	var b strings.Builder
	b.WriteString("Sources:\n")
	for i, s := range sources {
		excerpt := s.Content
		if len(excerpt) > 160 {
			excerpt = excerpt[:160] + "..."
		}
		b.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, excerpt))
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
