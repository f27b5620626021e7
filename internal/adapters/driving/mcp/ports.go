package mcp

import (
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions over the loaded documents.
	Chat driving.ChatService

	// Ingest loads and clears documents.
	Ingest driving.IngestService

	// Retrieval exposes raw top-k retrieval.
	Retrieval driving.RetrievalService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	// Retrieval is optional; the retrieve tool is skipped without it.
	return nil
}
