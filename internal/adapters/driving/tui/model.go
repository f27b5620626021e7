package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	ports    *Ports
	ctx      context.Context
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
	waiting  bool
}

// New creates the conversation model. The context bounds every question
// sent while the program runs.
func New(ctx context.Context, ports *Ports) (Model, error) {
	if err := ports.Validate(); err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ports:    ports,
		ctx:      ctx,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready. Ctrl+R resets the conversation, Ctrl+X clears documents, Ctrl+C quits.",
	}, nil
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, answer, and reload events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + summary, status, input frame, spacer
		vh := msg.Height - reserved - hh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.ports.Chat.ResetConversation()
			m.status = "Conversation reset. Documents are still loaded."
			m.refreshHistory()
			return m, nil
		case tea.KeyCtrlX:
			if err := m.ports.Ingest.ClearDocuments(m.ctx); err != nil {
				m.status = errorStyle.Render("Clear failed: " + err.Error())
				return m, nil
			}
			m.status = "Documents cleared. Conversation history kept."
			return m, nil
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			return m, m.askCmd(question)
		}

	case answerMsg:
		m.waiting = false
		m.status = "Answered. Ask a follow-up or Ctrl+R to start over."
		m.refreshHistory()
		m.viewport.GotoBottom()
		return m, nil

	case answerErrMsg:
		m.waiting = false
		m.status = errorStyle.Render("Error: " + msg.err.Error())
		m.refreshHistory()
		return m, nil

	case ReloadMsg:
		m.status = noticeStyle.Render("Reloading " + msg.Path + "...")
		return m, m.reloadCmd(msg.Path)

	case reloadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Reload failed: " + msg.err.Error())
		} else {
			m.status = noticeStyle.Render(fmt.Sprintf("Reloaded %s (%d chunks total)", msg.path, msg.chunks))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the conversation layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Docuspark")
	summary := summaryStyle.Render(m.documentSummary())
	history := historyStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + history + "\n" + input + "\n" + status
}

// askCmd sends the question off the update loop so typing stays live
// while generation runs.
func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.ports.Chat.Ask(m.ctx, question)
		if err != nil {
			return answerErrMsg{question: question, err: err}
		}
		return answerMsg{question: question, answer: answer}
	}
}

// reloadCmd re-ingests one document after a filesystem change.
func (m Model) reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.ports.Ingest.LoadDocuments(m.ctx, []driving.DocumentSource{{Path: path}})
		return reloadedMsg{path: path, chunks: m.ports.Ingest.ChunkCount(), err: err}
	}
}

func (m *Model) refreshHistory() {
	m.viewport.SetContent(renderHistory(m.ports.Chat.History()))
}

func (m Model) documentSummary() string {
	docs := m.ports.Ingest.Documents()
	if len(docs) == 0 {
		return "No documents loaded."
	}
	names := make([]string, len(docs))
	for i := range docs {
		names[i] = docs[i].Name
	}
	return fmt.Sprintf("%d document(s), %d chunks: %s",
		len(docs), m.ports.Ingest.ChunkCount(), strings.Join(names, ", "))
}

// renderHistory lays out the conversation oldest first, questions bold.
func renderHistory(turns []domain.ConversationTurn) string {
	if len(turns) == 0 {
		return "No conversation yet. Ask your first question below."
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(questionStyle.Render("You: "))
			b.WriteString(turn.Text)
		default:
			b.WriteString(turn.Text)
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
