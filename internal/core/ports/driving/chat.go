package driving

import (
	"context"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// ChatService answers questions over the session's documents while
// preserving multi-turn conversational context.
type ChatService interface {
	// Ask answers a natural-language query: retrieve the most relevant
	// chunks, assemble a bounded prompt with recent history, and invoke
	// the generation boundary. With no documents loaded it returns a
	// fixed notice and records the exchange without touching retrieval
	// or generation.
	Ask(ctx context.Context, query string) (string, error)

	// ResetConversation clears the turn sequence. The document set and
	// vector index are untouched.
	ResetConversation()

	// History returns a copy of the conversation turns in order.
	History() []domain.ConversationTurn
}

// RetrievalService exposes raw top-k chunk retrieval without generation.
type RetrievalService interface {
	// Retrieve embeds the query text and returns the k most similar
	// chunks, best first. k <= 0 uses the configured default.
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)
}
