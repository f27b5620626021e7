package driving

import (
	"context"
	"io"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// DocumentSource identifies a document to ingest: either a filesystem
// path or a byte stream with an explicit name and size. Exactly one of
// Path and Reader is set; both variants are normalised to a reader
// before extraction.
type DocumentSource struct {
	// Path is a filesystem path to the document. Size and name are
	// derived from the file when set.
	Path string

	// Reader supplies the document bytes when Path is empty.
	Reader io.Reader

	// Name is the display name for a Reader source.
	Name string

	// Size is the byte size for a Reader source, used for the size-cap
	// check before extraction.
	Size int64
}

// IngestService loads documents into the session's retrievable set.
type IngestService interface {
	// LoadDocuments ingests each source: size check, page extraction,
	// chunking, embedding, and one atomic index insert per source.
	// A source whose name is already ingested replaces the prior
	// version instead of duplicating it. A failing source aborts only
	// that source; documents ingested earlier in the batch stay
	// available. Returns the records of the sources that loaded, plus
	// the joined errors of those that did not.
	LoadDocuments(ctx context.Context, sources []DocumentSource) ([]domain.SourceDocument, error)

	// ClearDocuments removes all chunks, vectors, and document records
	// together. The conversation history is untouched.
	ClearDocuments(ctx context.Context) error

	// Documents lists the currently ingested sources.
	Documents() []domain.SourceDocument

	// ChunkCount reports the number of retrievable chunks in the session.
	ChunkCount() int
}
