package driven

import (
	"context"
	"io"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// PageExtractor turns document bytes into ordered per-page text.
// Non-document input fails with domain.ErrUnsupportedFormat.
type PageExtractor interface {
	// ExtractPages reads a document from r and returns its pages in order.
	// name is the display name used in error context.
	ExtractPages(ctx context.Context, r io.Reader, name string) ([]domain.Page, error)
}
