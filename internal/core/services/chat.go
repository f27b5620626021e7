package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// NoDocumentsAnswer is returned by Ask when the session has no
// retrievable chunks. The exchange is still recorded in the history.
const NoDocumentsAnswer = "No documents are loaded. Load one or more documents first, then ask again."

// systemInstructions frames the generation around the retrieved context.
const systemInstructions = `You are a document assistant. Answer the user's question using only the context excerpts below. Each excerpt is labelled with its source document and page number; cite them when relevant. If the context does not contain the answer, say so rather than guessing.`

// ChatConfig holds the conversation tunables.
type ChatConfig struct {
	// HistoryWindow is how many recent turns are carried into each
	// generation request.
	HistoryWindow int

	// MaxTokens bounds the completion length.
	MaxTokens int

	// Temperature is passed through to the generation boundary.
	Temperature float64
}

// ChatService orchestrates retrieval-grounded conversation.
type ChatService struct {
	session   *domain.Session
	retriever driving.RetrievalService
	llm       driven.LLMService
	index     driven.VectorIndex
	cfg       ChatConfig
}

// NewChatService creates the conversation orchestrator.
func NewChatService(
	session *domain.Session,
	retriever driving.RetrievalService,
	llm driven.LLMService,
	index driven.VectorIndex,
	cfg ChatConfig,
) *ChatService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 8
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	return &ChatService{
		session:   session,
		retriever: retriever,
		llm:       llm,
		index:     index,
		cfg:       cfg,
	}
}

// Ask answers a query against the loaded documents. The user turn is
// always recorded; the assistant turn only when generation succeeds, so
// a failed exchange can be retried without a dangling half-turn.
func (s *ChatService) Ask(ctx context.Context, query string) (string, error) {
	if s.index.Len() == 0 {
		s.session.AppendTurn(domain.RoleUser, query)
		s.session.AppendTurn(domain.RoleAssistant, NoDocumentsAnswer)
		return NoDocumentsAnswer, nil
	}

	// History is captured before the new user turn so the question is
	// not duplicated in the prompt.
	history := s.session.RecentTurns(s.cfg.HistoryWindow)
	s.session.AppendTurn(domain.RoleUser, query)

	hits, err := s.retriever.Retrieve(ctx, query, 0)
	if err != nil {
		return "", err
	}

	messages := s.assemblePrompt(hits, history, query)
	logger.Debug("Prompt: %d context chunks, %d history turns", len(hits), len(history))

	answer, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	s.session.AppendTurn(domain.RoleAssistant, answer)
	return answer, nil
}

// assemblePrompt builds the message sequence: a system message carrying
// the instructions and the labelled context excerpts, the recent history
// turns in order, then the current question.
func (s *ChatService) assemblePrompt(
	hits []domain.RetrievedChunk, history []domain.ConversationTurn, query string,
) []driven.ChatMessage {
	var system strings.Builder
	system.WriteString(systemInstructions)
	system.WriteString("\n\nContext excerpts:\n")
	for _, hit := range hits {
		fmt.Fprintf(&system, "\n[%s p.%d]\n%s\n", hit.Chunk.SourceName, hit.Chunk.PageNumber, hit.Chunk.Text)
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: system.String()})
	for _, turn := range history {
		messages = append(messages, driven.ChatMessage{Role: string(turn.Role), Content: turn.Text})
	}
	messages = append(messages, driven.ChatMessage{Role: "user", Content: query})
	return messages
}

// ResetConversation clears the turn sequence. Documents and index stay.
func (s *ChatService) ResetConversation() {
	s.session.ResetConversation()
	logger.Info("Conversation reset")
}

// History returns a copy of the conversation turns in order.
func (s *ChatService) History() []domain.ConversationTurn {
	return s.session.Turns()
}
