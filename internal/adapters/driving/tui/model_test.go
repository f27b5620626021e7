package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

type mockChat struct {
	answer    string
	err       error
	lastQuery string
	resets    int
	turns     []domain.ConversationTurn
}

func (m *mockChat) Ask(_ context.Context, query string) (string, error) {
	m.lastQuery = query
	if m.err != nil {
		return "", m.err
	}
	m.turns = append(m.turns,
		domain.ConversationTurn{Role: domain.RoleUser, Text: query},
		domain.ConversationTurn{Role: domain.RoleAssistant, Text: m.answer},
	)
	return m.answer, nil
}

func (m *mockChat) ResetConversation() {
	m.resets++
	m.turns = nil
}

func (m *mockChat) History() []domain.ConversationTurn { return m.turns }

type mockIngest struct {
	docs       []domain.SourceDocument
	chunkCount int
	clears     int
	clearErr   error
	loaded     []driving.DocumentSource
}

func (m *mockIngest) LoadDocuments(_ context.Context, sources []driving.DocumentSource) ([]domain.SourceDocument, error) {
	m.loaded = append(m.loaded, sources...)
	return m.docs, nil
}

func (m *mockIngest) ClearDocuments(context.Context) error {
	m.clears++
	return m.clearErr
}

func (m *mockIngest) Documents() []domain.SourceDocument { return m.docs }
func (m *mockIngest) ChunkCount() int                    { return m.chunkCount }

func newTestModel(t *testing.T, chat *mockChat, ingest *mockIngest) Model {
	t.Helper()
	m, err := New(context.Background(), &Ports{Chat: chat, Ingest: ingest})
	require.NoError(t, err)
	return m
}

func TestNew_RequiresChat(t *testing.T) {
	_, err := New(context.Background(), &Ports{Ingest: &mockIngest{}})
	assert.ErrorIs(t, err, ErrMissingChatService)
}

func TestNew_RequiresIngest(t *testing.T) {
	_, err := New(context.Background(), &Ports{Chat: &mockChat{}})
	assert.ErrorIs(t, err, ErrMissingIngestService)
}

func TestUpdate_EnterAsksQuestion(t *testing.T) {
	chat := &mockChat{answer: "the answer"}
	m := newTestModel(t, chat, &mockIngest{})

	m.input.SetValue("what is this about?")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())

	msg := cmd()
	answer, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, "what is this about?", chat.lastQuery)
	assert.Equal(t, "the answer", answer.answer)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.waiting)
}

func TestUpdate_EnterIgnoresEmptyInput(t *testing.T) {
	chat := &mockChat{}
	m := newTestModel(t, chat, &mockIngest{})

	m.input.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, chat.lastQuery)
}

func TestUpdate_EnterIgnoredWhileWaiting(t *testing.T) {
	chat := &mockChat{answer: "x"}
	m := newTestModel(t, chat, &mockIngest{})
	m.waiting = true

	m.input.SetValue("second question")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestUpdate_AskError(t *testing.T) {
	chat := &mockChat{err: errors.New("generation exploded")}
	m := newTestModel(t, chat, &mockIngest{})

	m.input.SetValue("doomed question")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(answerErrMsg)
	require.True(t, ok)
	assert.Error(t, errMsg.err)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.waiting)
	assert.Contains(t, m.status, "generation exploded")
}

func TestUpdate_CtrlRResetsConversation(t *testing.T) {
	chat := &mockChat{}
	m := newTestModel(t, chat, &mockIngest{})

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 1, chat.resets)
}

func TestUpdate_CtrlXClearsDocuments(t *testing.T) {
	ingest := &mockIngest{}
	m := newTestModel(t, &mockChat{}, ingest)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Equal(t, 1, ingest.clears)
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, &mockChat{}, &mockIngest{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_ReloadMsg(t *testing.T) {
	ingest := &mockIngest{chunkCount: 12}
	m := newTestModel(t, &mockChat{}, ingest)

	updated, cmd := m.Update(ReloadMsg{Path: "/tmp/doc.pdf"})
	m = updated.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	reloaded, ok := msg.(reloadedMsg)
	require.True(t, ok)
	assert.NoError(t, reloaded.err)
	assert.Equal(t, 12, reloaded.chunks)
	require.Len(t, ingest.loaded, 1)
	assert.Equal(t, "/tmp/doc.pdf", ingest.loaded[0].Path)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.status, "Reloaded")
}

func TestView_NotReadyShowsLoading(t *testing.T) {
	m := newTestModel(t, &mockChat{}, &mockIngest{})
	assert.Equal(t, "Loading...", m.View())
}

func TestView_AfterResize(t *testing.T) {
	docs := []domain.SourceDocument{{Name: "report.pdf", Pages: 4, Chunks: 9}}
	m := newTestModel(t, &mockChat{}, &mockIngest{docs: docs, chunkCount: 9})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Docuspark")
	assert.Contains(t, view, "report.pdf")
}

func TestRenderHistory(t *testing.T) {
	assert.Contains(t, renderHistory(nil), "No conversation yet")

	out := renderHistory([]domain.ConversationTurn{
		{Role: domain.RoleUser, Text: "question one"},
		{Role: domain.RoleAssistant, Text: "answer one"},
	})
	assert.Contains(t, out, "question one")
	assert.Contains(t, out, "answer one")
}

func TestDocumentSummary_Empty(t *testing.T) {
	m := newTestModel(t, &mockChat{}, &mockIngest{})
	assert.Equal(t, "No documents loaded.", m.documentSummary())
}
