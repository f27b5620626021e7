package domain

// Page is a single page of extracted text from a source document.
type Page struct {
	// Number is the 1-indexed page number within the source.
	Number int

	// Text is the raw extracted text of the page.
	Text string
}

// SourceDocument summarises one ingested source.
// It is created on ingestion, immutable afterwards, and discarded when
// the session's document set is cleared.
type SourceDocument struct {
	// Name is the display name of the source (usually the file name).
	Name string

	// Size is the source size in bytes as observed before extraction.
	Size int64

	// Pages is the number of pages extracted from the source.
	Pages int

	// Chunks is the number of chunks produced from the source.
	Chunks int
}

// Chunk is the atomic retrievable unit: a bounded span of source text
// with provenance metadata tying it back to its document and page.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// SourceName names the document this chunk was cut from.
	SourceName string

	// Text is the chunk content.
	Text string

	// PageNumber is the page containing the chunk's first character.
	// A chunk may span a page boundary; only the starting page is recorded.
	PageNumber int

	// Position is the ordinal index of the chunk within its source
	// document, starting at 0. Used for stable ordering and tie-breaking.
	Position int

	// StartChar and EndChar delimit the chunk within the concatenated
	// document text (half-open range, byte offsets).
	StartChar int
	EndChar   int
}

// RetrievedChunk pairs a chunk with its similarity score for a query.
type RetrievedChunk struct {
	Chunk Chunk

	// Score is the cosine similarity to the query vector (1.0 = identical).
	Score float64
}
