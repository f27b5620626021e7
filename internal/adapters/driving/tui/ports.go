// Package tui provides the interactive conversation interface for
// Docuspark, built on Bubble Tea.
package tui

import (
	"errors"

	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("tui: ingest service is required")

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Chat answers questions over the loaded documents.
	Chat driving.ChatService

	// Ingest loads and clears documents.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
