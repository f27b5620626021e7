package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anjali642004/docuspark-cli/internal/chunker"
	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestConfig holds the tunables of the ingestion pipeline.
type IngestConfig struct {
	// MaxSourceBytes caps a single source document; the check runs
	// before any extraction call.
	MaxSourceBytes int64

	// EmbedBatchSize is how many chunk texts go into one embedding
	// call. A throughput tunable, not a correctness requirement.
	EmbedBatchSize int
}

// IngestService loads documents into the session's retrievable set.
type IngestService struct {
	session   *domain.Session
	extractor driven.PageExtractor
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	splitter  *chunker.Splitter
	cfg       IngestConfig
}

// NewIngestService creates the ingestion pipeline.
func NewIngestService(
	session *domain.Session,
	extractor driven.PageExtractor,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	splitter *chunker.Splitter,
	cfg IngestConfig,
) *IngestService {
	if cfg.MaxSourceBytes <= 0 {
		cfg.MaxSourceBytes = 2 << 30
	}
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = 64
	}
	return &IngestService{
		session:   session,
		extractor: extractor,
		embedder:  embedder,
		index:     index,
		splitter:  splitter,
		cfg:       cfg,
	}
}

// LoadDocuments ingests each source independently. A source whose name
// is already ingested replaces the prior version. A failing source is
// skipped; its error is joined into the returned error while documents
// ingested earlier in the batch stay available.
func (s *IngestService) LoadDocuments(
	ctx context.Context, sources []driving.DocumentSource,
) ([]domain.SourceDocument, error) {
	logger.Section("Document Ingestion")

	var loaded []domain.SourceDocument
	var errs []error

	for _, source := range sources {
		doc, err := s.loadOne(ctx, source)
		if err != nil {
			logger.Warn("Ingestion failed: %v", err)
			errs = append(errs, err)
			continue
		}
		s.session.AddDocument(*doc)
		loaded = append(loaded, *doc)
		logger.Info("Ingested %s: %d pages, %d chunks", doc.Name, doc.Pages, doc.Chunks)
	}

	return loaded, errors.Join(errs...)
}

// loadOne runs the full pipeline for a single source: size cap, page
// extraction, streamed chunking, batched embedding, and one atomic
// index insert. Any failure leaves the index untouched for this source.
func (s *IngestService) loadOne(ctx context.Context, source driving.DocumentSource) (*domain.SourceDocument, error) {
	name, size, reader, cleanup, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if size > s.cfg.MaxSourceBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, cap is %d",
			domain.ErrSourceTooLarge, name, size, s.cfg.MaxSourceBytes)
	}

	pages, err := s.extractor.ExtractPages(ctx, reader, name)
	if err != nil {
		return nil, err
	}

	chunks, vectors, err := s.chunkAndEmbed(ctx, pages, name)
	if err != nil {
		return nil, err
	}

	// Loading a name already in the index replaces it. Stale chunks are
	// dropped only once the new version has embedded successfully, so a
	// failed reload keeps the previous version retrievable.
	if err := s.index.RemoveSource(ctx, name); err != nil {
		return nil, fmt.Errorf("replace %s: %w", name, err)
	}
	if err := s.index.Insert(ctx, chunks, vectors); err != nil {
		return nil, fmt.Errorf("index %s: %w", name, err)
	}

	return &domain.SourceDocument{
		Name:   name,
		Size:   size,
		Pages:  len(pages),
		Chunks: len(chunks),
	}, nil
}

// chunkAndEmbed streams pages through the splitter and embeds chunk
// texts in batches as they accumulate, so peak text buffering stays
// bounded by the chunk size and batch size rather than document size.
func (s *IngestService) chunkAndEmbed(
	ctx context.Context, pages []domain.Page, name string,
) ([]domain.Chunk, [][]float32, error) {
	stream := s.splitter.Stream(name)

	var chunks []domain.Chunk
	var vectors [][]float32
	var pending []domain.Chunk

	embedPending := func() error {
		if len(pending) == 0 {
			return nil
		}
		texts := make([]string, len(pending))
		for i := range pending {
			texts[i] = pending[i].Text
		}
		batch, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed %s: %w", name, err)
		}
		if len(batch) != len(pending) {
			return fmt.Errorf("embed %s: %w: %d texts, %d vectors",
				name, domain.ErrCountMismatch, len(pending), len(batch))
		}
		chunks = append(chunks, pending...)
		vectors = append(vectors, batch...)
		pending = pending[:0]
		return nil
	}

	for _, page := range pages {
		pending = append(pending, stream.Push(page)...)
		for len(pending) >= s.cfg.EmbedBatchSize {
			head := pending[:s.cfg.EmbedBatchSize]
			tail := pending[s.cfg.EmbedBatchSize:]
			pending = head
			if err := embedPending(); err != nil {
				return nil, nil, err
			}
			pending = append(pending, tail...)
		}
	}

	pending = append(pending, stream.Flush()...)
	if err := embedPending(); err != nil {
		return nil, nil, err
	}

	return chunks, vectors, nil
}

// ClearDocuments removes chunks, vectors, and document records together,
// keeping the chunk/vector invariant intact. Conversation history stays.
func (s *IngestService) ClearDocuments(ctx context.Context) error {
	if err := s.index.Clear(ctx); err != nil {
		return err
	}
	s.session.ClearDocuments()
	logger.Info("Document set cleared")
	return nil
}

// Documents lists the currently ingested sources.
func (s *IngestService) Documents() []domain.SourceDocument {
	return s.session.Documents()
}

// ChunkCount reports the number of retrievable chunks in the session.
func (s *IngestService) ChunkCount() int {
	return s.index.Len()
}

// openSource normalises the path and reader variants of a
// DocumentSource to a name, observed size, and reader.
func openSource(source driving.DocumentSource) (string, int64, io.Reader, func(), error) {
	if source.Path == "" {
		if source.Reader == nil {
			return "", 0, nil, nil, fmt.Errorf("%w: source has neither path nor reader", domain.ErrUnsupportedFormat)
		}
		return source.Name, source.Size, source.Reader, func() {}, nil
	}

	info, err := os.Stat(source.Path)
	if err != nil {
		return "", 0, nil, nil, fmt.Errorf("stat %s: %w", source.Path, err)
	}

	f, err := os.Open(source.Path)
	if err != nil {
		return "", 0, nil, nil, fmt.Errorf("open %s: %w", source.Path, err)
	}

	return filepath.Base(source.Path), info.Size(), f, func() { f.Close() }, nil
}
