package domain

import "errors"

// Domain errors represent pipeline failures the caller can act on.
// Context (source name, observed size, offending parameter) is attached
// by wrapping with fmt.Errorf and %w.
var (
	// ErrInvalidChunking indicates bad chunking parameters
	// (overlap must satisfy 0 <= overlap < chunk size).
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrUnsupportedFormat indicates the source is not a readable PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrSourceTooLarge indicates a source exceeds the configured size cap.
	// The check runs before any extraction is attempted.
	ErrSourceTooLarge = errors.New("source document too large")

	// ErrCountMismatch indicates a chunk/vector count or dimension mismatch
	// on index insert. It signals an internal invariant violation and is
	// fatal to the current ingestion only.
	ErrCountMismatch = errors.New("chunk and vector counts do not match")

	// ErrEmbeddingUnavailable indicates the embedding service failed or is
	// not configured. Recoverable: the user may retry the operation.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationFailed indicates the language model call failed or
	// returned an empty completion. Recoverable: the user may retry.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrMissingCredential indicates no API key is configured for the
	// selected provider. Surfaced once at session start; blocks every
	// operation that needs the generation or embedding boundary.
	ErrMissingCredential = errors.New("missing API credential")
)
