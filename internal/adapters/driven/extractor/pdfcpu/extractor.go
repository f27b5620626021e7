// Package pdfcpu provides a PageExtractor backed by the pdfcpu library,
// a pure-Go PDF processor. pdfcpu works on files, so the input stream is
// spooled to a temporary file first; large sources never materialise in
// memory.
package pdfcpu

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor extracts per-page text from PDF documents.
type Extractor struct {
	conf *model.Configuration
}

// New creates a PDF page extractor.
func New() *Extractor {
	return &Extractor{conf: model.NewDefaultConfiguration()}
}

// ExtractPages reads a PDF from r and returns its pages in order.
// Input that pdfcpu cannot parse fails with domain.ErrUnsupportedFormat.
func (e *Extractor) ExtractPages(ctx context.Context, r io.Reader, name string) ([]domain.Page, error) {
	tmp, err := os.CreateTemp("", "docuspark-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("spool %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("spool %s: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfCtx, err := api.ReadContextFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a readable PDF: %v", domain.ErrUnsupportedFormat, name, err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp("", "docuspark-pages-")
	if err != nil {
		return nil, fmt.Errorf("create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(tmpPath, outDir, nil, e.conf); err != nil {
		return nil, fmt.Errorf("%w: extract content of %s: %v", domain.ErrUnsupportedFormat, name, err)
	}

	pageTexts := make(map[int]string)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("read extraction dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(entry.Name(), "Content_page_%d", &pageNum); err != nil {
			if _, err := fmt.Sscanf(entry.Name(), "page_%d", &pageNum); err != nil {
				continue
			}
		}
		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = string(content)
	}

	pages := make([]domain.Page, 0, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		pages = append(pages, domain.Page{Number: pageNum, Text: pageTexts[pageNum]})
	}

	logger.Debug("Extracted %d pages from %s", len(pages), name)
	return pages, nil
}
