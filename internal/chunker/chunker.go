// Package chunker splits extracted page text into fixed-size overlapping
// chunks with stable provenance metadata.
//
// Sizes are measured in bytes of UTF-8 text. Each chunk overlaps the
// previous one by a configurable amount so context spanning a boundary
// stays retrievable. Chunks record the page of their first character,
// their byte range within the concatenated document text, and an ordinal
// position starting at 0 per source document.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// DefaultChunkSize is the default chunk size in bytes.
const DefaultChunkSize = 1000

// DefaultOverlap is the default overlap between consecutive chunks.
const DefaultOverlap = 200

// Splitter holds validated chunking parameters.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(s *Splitter) { s.chunkSize = size }
}

// WithOverlap sets the overlap between consecutive chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) { s.overlap = overlap }
}

// New creates a Splitter. The parameters must satisfy
// 0 <= overlap < chunkSize, else domain.ErrInvalidChunking is returned.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunking, s.chunkSize)
	}
	if s.overlap < 0 || s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must satisfy 0 <= overlap < chunk size %d",
			domain.ErrInvalidChunking, s.overlap, s.chunkSize)
	}

	return s, nil
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split chunks a complete page sequence in one call. It is a pure
// function of its inputs (chunk IDs aside) and is equivalent to pushing
// every page through a Stream and flushing.
func (s *Splitter) Split(pages []domain.Page, sourceName string) []domain.Chunk {
	st := s.Stream(sourceName)
	var chunks []domain.Chunk
	for _, page := range pages {
		chunks = append(chunks, st.Push(page)...)
	}
	return append(chunks, st.Flush()...)
}

// Stream starts an incremental chunking pass over one source document.
// Streams bound memory to a small multiple of the chunk size regardless
// of document length.
func (s *Splitter) Stream(sourceName string) *Stream {
	return &Stream{
		splitter:   s,
		sourceName: sourceName,
	}
}

// pageMark records where a page begins in the concatenated document text.
type pageMark struct {
	off  int
	page int
}

// Stream is the incremental chunking state for one source document.
// Pages are pushed in order; full-size chunks are emitted as soon as
// enough text has accumulated and the consumed prefix is discarded.
type Stream struct {
	splitter   *Splitter
	sourceName string

	buf    []byte
	bufOff int // global offset of buf[0]
	marks  []pageMark

	start    int // global offset of the next chunk start
	lastEnd  int // global end of the last emitted chunk
	total    int // global length pushed so far
	position int
}

// Push appends one page of text and returns any chunks completed by it.
func (st *Stream) Push(page domain.Page) []domain.Chunk {
	st.marks = append(st.marks, pageMark{off: st.total, page: page.Number})
	st.buf = append(st.buf, page.Text...)
	st.total += len(page.Text)

	var chunks []domain.Chunk
	for st.total-st.start >= st.splitter.chunkSize {
		chunks = append(chunks, st.emit(st.start+st.splitter.chunkSize))
	}
	return chunks
}

// Flush emits the trailing partial chunk, if any. Content shorter than
// the chunk size is never dropped; a tail that is pure overlap of the
// previous chunk carries no new text and is not re-emitted.
func (st *Stream) Flush() []domain.Chunk {
	if st.total <= st.lastEnd {
		return nil
	}
	return []domain.Chunk{st.emit(st.total)}
}

// emit cuts the chunk [st.start, end) and advances the window.
func (st *Stream) emit(end int) domain.Chunk {
	chunk := domain.Chunk{
		ID:         uuid.New().String(),
		SourceName: st.sourceName,
		Text:       string(st.buf[st.start-st.bufOff : end-st.bufOff]),
		PageNumber: st.pageFor(st.start),
		Position:   st.position,
		StartChar:  st.start,
		EndChar:    end,
	}
	st.position++
	st.lastEnd = end
	st.start += st.splitter.chunkSize - st.splitter.overlap
	st.compact()
	return chunk
}

// compact discards buffered text and page marks before the next chunk start.
func (st *Stream) compact() {
	if st.start > st.bufOff {
		drop := st.start - st.bufOff
		if drop > len(st.buf) {
			drop = len(st.buf)
		}
		st.buf = st.buf[drop:]
		st.bufOff += drop
	}

	// Keep the last mark at or before start; it still resolves pageFor.
	keep := 0
	for i, m := range st.marks {
		if m.off <= st.start {
			keep = i
		}
	}
	st.marks = st.marks[keep:]
}

// pageFor resolves the page containing the global offset off.
func (st *Stream) pageFor(off int) int {
	page := 0
	for _, m := range st.marks {
		if m.off > off {
			break
		}
		page = m.page
	}
	return page
}
