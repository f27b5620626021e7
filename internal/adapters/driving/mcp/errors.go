// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Docuspark. It lets AI assistants load documents and ask grounded
// questions over them.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")
