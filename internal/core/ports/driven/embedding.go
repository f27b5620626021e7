package driven

import "context"

// EmbeddingService maps text to fixed-dimension vectors for similarity
// comparison. The core depends on it only through this interface.
//
// Implementations may include:
//   - Gemini (gemini-embedding-001)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Compatible local inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, same length and
	// order as the input. Batching amortises per-call overhead during
	// ingestion; it is a throughput concern, not a correctness one.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536).
	// All vectors in a session share one dimension.
	Dimensions() int

	// ModelName returns the name of the embedding model in use.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at session start to surface credential problems early.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
