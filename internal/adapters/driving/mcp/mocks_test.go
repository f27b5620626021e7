package mcp

import (
	"context"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

// mockChatService is a test double for driving.ChatService.
type mockChatService struct {
	answer    string
	err       error
	lastQuery string
	resets    int
	turns     []domain.ConversationTurn
}

func (m *mockChatService) Ask(_ context.Context, query string) (string, error) {
	m.lastQuery = query
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockChatService) ResetConversation() { m.resets++ }

func (m *mockChatService) History() []domain.ConversationTurn { return m.turns }

// mockIngestService is a test double for driving.IngestService.
type mockIngestService struct {
	docs        []domain.SourceDocument
	loadErr     error
	clearErr    error
	clears      int
	lastSources []driving.DocumentSource
	chunkCount  int
}

func (m *mockIngestService) LoadDocuments(_ context.Context, sources []driving.DocumentSource) ([]domain.SourceDocument, error) {
	m.lastSources = sources
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.docs, nil
}

func (m *mockIngestService) ClearDocuments(_ context.Context) error {
	m.clears++
	return m.clearErr
}

func (m *mockIngestService) Documents() []domain.SourceDocument { return m.docs }

func (m *mockIngestService) ChunkCount() int { return m.chunkCount }

// mockRetrievalService is a test double for driving.RetrievalService.
type mockRetrievalService struct {
	hits  []domain.RetrievedChunk
	err   error
	lastK int
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, k int) ([]domain.RetrievedChunk, error) {
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

var (
	_ driving.ChatService      = (*mockChatService)(nil)
	_ driving.IngestService    = (*mockIngestService)(nil)
	_ driving.RetrievalService = (*mockRetrievalService)(nil)
)
