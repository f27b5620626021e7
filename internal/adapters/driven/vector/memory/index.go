// Package memory provides an in-memory vector index with exact
// brute-force cosine similarity search.
//
// Exact k-NN keeps retrieval deterministic for a fixed index state and
// query; the session working set (a few GB of source text) fits the
// linear scan comfortably. Cosine similarity is the single metric for
// the life of the index; changing metrics requires Clear and re-insert.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores chunk vectors and answers nearest-neighbour queries.
// Insert, RemoveSource, and Clear are the only mutations; all take the
// write lock, so they are atomic with respect to concurrent Search calls.
type Index struct {
	mu      sync.RWMutex
	dims    int
	chunks  []domain.Chunk
	vectors [][]float32
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Insert appends chunks with their vectors, all-or-nothing.
// The first insert fixes the index dimension.
func (idx *Index) Insert(_ context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrCountMismatch, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Validate every vector before touching state; a mismatch must leave
	// zero partial inserts.
	dims := idx.dims
	if dims == 0 {
		dims = len(vectors[0])
	}
	for i, vec := range vectors {
		if len(vec) != dims {
			return fmt.Errorf("%w: vector %d has dimension %d, index has %d",
				domain.ErrCountMismatch, i, len(vec), dims)
		}
	}

	idx.dims = dims
	idx.chunks = append(idx.chunks, chunks...)
	idx.vectors = append(idx.vectors, vectors...)
	return nil
}

// Search returns the top-k chunks by cosine similarity, descending by
// score with ties broken by ascending chunk position, then source name.
// A query of the wrong dimension is rejected, not truncated.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if k <= 0 || len(idx.chunks) == 0 {
		return []domain.RetrievedChunk{}, nil
	}
	if len(query) != idx.dims {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrCountMismatch, len(query), idx.dims)
	}

	hits := make([]domain.RetrievedChunk, len(idx.chunks))
	for i, vec := range idx.vectors {
		hits[i] = domain.RetrievedChunk{
			Chunk: idx.chunks[i],
			Score: cosine(query, vec),
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].Chunk.Position != hits[j].Chunk.Position {
			return hits[i].Chunk.Position < hits[j].Chunk.Position
		}
		return hits[i].Chunk.SourceName < hits[j].Chunk.SourceName
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// RemoveSource drops every chunk of the named source. Removing a source
// the index never held is a no-op. When the last chunk goes, the
// dimension resets as with Clear.
func (idx *Index) RemoveSource(_ context.Context, sourceName string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	keptChunks := idx.chunks[:0]
	keptVectors := idx.vectors[:0]
	for i, chunk := range idx.chunks {
		if chunk.SourceName == sourceName {
			continue
		}
		keptChunks = append(keptChunks, chunk)
		keptVectors = append(keptVectors, idx.vectors[i])
	}
	idx.chunks = keptChunks
	idx.vectors = keptVectors
	if len(idx.chunks) == 0 {
		idx.chunks = nil
		idx.vectors = nil
		idx.dims = 0
	}
	return nil
}

// Clear removes all chunks and vectors. Idempotent. The dimension resets
// with the content, so a re-insert may use a different embedding model.
func (idx *Index) Clear(_ context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.dims = 0
	idx.chunks = nil
	idx.vectors = nil
	return nil
}

// Len reports the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Close releases resources. The index holds none beyond its slices.
func (idx *Index) Close() error {
	return nil
}

// cosine computes the cosine similarity of two equal-length vectors.
// A zero-norm vector scores 0 against everything.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
