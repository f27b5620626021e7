package driven

import (
	"context"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// VectorIndex owns the embedding vectors for all chunks of the current
// session and answers k-nearest-neighbour queries over them.
//
// The index is mutated only by bulk Insert (append), RemoveSource
// (drop one source), and Clear (wipe); it is never partially updated
// per item. All mutations are atomic with respect to concurrent Search
// calls.
type VectorIndex interface {
	// Insert appends chunks with their vectors. len(chunks) must equal
	// len(vectors) and every vector must share the index dimension, else
	// the call fails with domain.ErrCountMismatch and nothing is inserted.
	Insert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error

	// Search returns the top-k chunks by cosine similarity to the query
	// vector, descending by score with ties broken by ascending chunk
	// position. Fewer than k chunks returns all of them; an empty index
	// returns an empty result, not an error. A non-empty index rejects a
	// query whose dimension differs from the pinned index dimension with
	// domain.ErrCountMismatch.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// RemoveSource drops every chunk belonging to the named source so a
	// changed document can be re-ingested without leaving stale chunks
	// behind. Unknown sources are a no-op.
	RemoveSource(ctx context.Context, sourceName string) error

	// Clear removes all chunks and vectors. Idempotent.
	Clear(ctx context.Context) error

	// Len reports the number of indexed chunks.
	Len() int

	// Close releases resources.
	Close() error
}
