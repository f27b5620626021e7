package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjali642004/docuspark-cli/internal/adapters/driven/vector/memory"
	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// newChatFixture wires a chat service over an index seeded with one
// chunk per embedder key.
func newChatFixture(t *testing.T, keys []string, llm *mockLLM) (*ChatService, *mockEmbedder, *memory.Index, *domain.Session) {
	t.Helper()
	embedder := &mockEmbedder{keys: keys}
	index := seedIndex(t, embedder)
	session := domain.NewSession()
	retriever := NewRetriever(embedder, index, 2)
	chat := NewChatService(session, retriever, llm, index, ChatConfig{HistoryWindow: 4})
	return chat, embedder, index, session
}

func TestAsk_NoDocumentsReturnsNoticeWithoutRetrievalOrGeneration(t *testing.T) {
	embedder := &mockEmbedder{keys: []string{"a"}}
	index := memory.NewIndex()
	session := domain.NewSession()
	llm := &mockLLM{answer: "should never be produced"}
	chat := NewChatService(session, NewRetriever(embedder, index, 2), llm, index, ChatConfig{})

	answer, err := chat.Ask(context.Background(), "what is in my documents?")
	require.NoError(t, err)
	assert.Equal(t, NoDocumentsAnswer, answer)

	assert.Equal(t, 0, embedder.embedCalls, "no embedding without documents")
	assert.Equal(t, 0, llm.calls, "no generation without documents")

	// The exchange is still part of the history.
	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, NoDocumentsAnswer, turns[1].Text)
}

func TestAsk_GroundedAnswer(t *testing.T) {
	llm := &mockLLM{answer: "The capital of France is Paris [doc.pdf p.1]."}
	chat, _, _, session := newChatFixture(t, []string{"france", "japan"}, llm)

	answer, err := chat.Ask(context.Background(), "What is the capital of france?")
	require.NoError(t, err)
	assert.Contains(t, answer, "Paris")

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, answer, turns[1].Text)
}

func TestAsk_PromptCarriesContextWithProvenance(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	chat, _, _, _ := newChatFixture(t, []string{"france", "japan"}, llm)

	_, err := chat.Ask(context.Background(), "Tell me about france")
	require.NoError(t, err)

	require.NotEmpty(t, llm.messages)
	system := llm.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "[doc.pdf p.1]")
	assert.Contains(t, system.Content, "All about france.")

	last := llm.messages[len(llm.messages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "Tell me about france", last.Content)
}

func TestAsk_GenerationFailureLeavesNoAssistantTurn(t *testing.T) {
	llm := &mockLLM{err: fmt.Errorf("%w: upstream 500", domain.ErrGenerationFailed)}
	chat, _, _, session := newChatFixture(t, []string{"france"}, llm)

	_, err := chat.Ask(context.Background(), "anything about france")
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)

	turns := session.Turns()
	require.Len(t, turns, 1, "only the user turn is recorded on failure")
	assert.Equal(t, domain.RoleUser, turns[0].Role)
}

func TestAsk_RetrievalFailureSurfaces(t *testing.T) {
	llm := &mockLLM{answer: "never"}
	chat, embedder, _, _ := newChatFixture(t, []string{"france"}, llm)
	embedder.err = fmt.Errorf("boom")

	_, err := chat.Ask(context.Background(), "question")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Equal(t, 0, llm.calls)
}

func TestAsk_HistoryWindowBoundsPrompt(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	chat, _, _, session := newChatFixture(t, []string{"france"}, llm)

	// Six prior turns; the window is four.
	for i := 0; i < 3; i++ {
		session.AppendTurn(domain.RoleUser, fmt.Sprintf("old question %d", i))
		session.AppendTurn(domain.RoleAssistant, fmt.Sprintf("old answer %d", i))
	}

	_, err := chat.Ask(context.Background(), "newest question about france")
	require.NoError(t, err)

	// system + 4 history turns + current question
	require.Len(t, llm.messages, 6)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Equal(t, "old question 1", llm.messages[1].Content)
	assert.Equal(t, "old answer 2", llm.messages[4].Content)
	assert.Equal(t, "newest question about france", llm.messages[5].Content)
}

func TestAsk_QuestionNotDuplicatedInHistory(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	chat, _, _, _ := newChatFixture(t, []string{"france"}, llm)

	_, err := chat.Ask(context.Background(), "unique question text")
	require.NoError(t, err)

	occurrences := 0
	for _, msg := range llm.messages {
		if msg.Content == "unique question text" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestResetConversation_KeepsIndex(t *testing.T) {
	llm := &mockLLM{answer: "ok"}
	chat, _, index, session := newChatFixture(t, []string{"france"}, llm)

	_, err := chat.Ask(context.Background(), "about france")
	require.NoError(t, err)
	require.NotEmpty(t, session.Turns())
	indexed := index.Len()
	require.Greater(t, indexed, 0)

	chat.ResetConversation()

	assert.Empty(t, chat.History())
	assert.Equal(t, indexed, index.Len(), "documents survive a conversation reset")
}

func TestHistory_ReturnsTurnsInOrder(t *testing.T) {
	llm := &mockLLM{answer: "first answer"}
	chat, _, _, _ := newChatFixture(t, []string{"france"}, llm)

	_, err := chat.Ask(context.Background(), "first question")
	require.NoError(t, err)
	llm.answer = "second answer"
	_, err = chat.Ask(context.Background(), "second question")
	require.NoError(t, err)

	history := chat.History()
	require.Len(t, history, 4)
	assert.Equal(t, "first question", history[0].Text)
	assert.Equal(t, "first answer", history[1].Text)
	assert.Equal(t, "second question", history[2].Text)
	assert.Equal(t, "second answer", history[3].Text)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].Seq, history[i-1].Seq)
	}
}
