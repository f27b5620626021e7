package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrievalService = (*Retriever)(nil)

// DefaultTopK is the number of chunks retrieved when none is requested.
const DefaultTopK = 4

// Retriever embeds query text and searches the vector index.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	topK     int
}

// NewRetriever creates a retriever. topK <= 0 falls back to DefaultTopK.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{embedder: embedder, index: index, topK: topK}
}

// Retrieve returns the k chunks most similar to the query, best first.
// k <= 0 uses the configured default. An empty index yields an empty
// slice, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		k = r.topK
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	hits, err := r.index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.Debug("Retrieved %d chunks for query (k=%d)", len(hits), k)
	return hits, nil
}
