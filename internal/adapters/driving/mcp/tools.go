package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the loaded documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the query to match against document chunks"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 4)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []RetrievedChunkOutput `json:"chunks"`
	Count  int                    `json:"count"`
}

// RetrievedChunkOutput represents a single retrieved chunk.
type RetrievedChunkOutput struct {
	Source string  `json:"source"`
	Page   int     `json:"page"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
}

// LoadDocumentsInput is the input schema for the load_documents tool.
type LoadDocumentsInput struct {
	Paths []string `json:"paths" jsonschema:"filesystem paths of documents to load"`
}

// LoadDocumentsOutput is the output schema for the load_documents tool.
type LoadDocumentsOutput struct {
	Documents []LoadedDocumentOutput `json:"documents"`
	Chunks    int                    `json:"chunks"`
}

// LoadedDocumentOutput records one ingested document.
type LoadedDocumentOutput struct {
	Name   string `json:"name"`
	Pages  int    `json:"pages"`
	Chunks int    `json:"chunks"`
}

// EmptyInput is the input schema for tools that take no arguments.
type EmptyInput struct{}

// StatusOutput reports the result of a state-changing tool.
type StatusOutput struct {
	Status string `json:"status"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered from the loaded documents with cited sources",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_documents",
		Description: "Load PDF documents into the session for question answering",
	}, s.handleLoadDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_documents",
		Description: "Remove all loaded documents from the session",
	}, s.handleClearDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset_conversation",
		Description: "Clear the conversation history while keeping documents loaded",
	}, s.handleResetConversation)

	if s.ports.Retrieval != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "retrieve",
			Description: "Return the document chunks most similar to a query without generating an answer",
		}, s.handleRetrieve)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Chat.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	hits, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]RetrievedChunkOutput, len(hits)),
		Count:  len(hits),
	}
	for i := range hits {
		output.Chunks[i] = RetrievedChunkOutput{
			Source: hits[i].Chunk.SourceName,
			Page:   hits[i].Chunk.PageNumber,
			Score:  hits[i].Score,
			Text:   hits[i].Chunk.Text,
		}
	}
	return nil, output, nil
}

// handleLoadDocuments handles the load_documents tool invocation.
func (s *Server) handleLoadDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadDocumentsInput,
) (*mcp.CallToolResult, LoadDocumentsOutput, error) {
	sources := make([]driving.DocumentSource, len(input.Paths))
	for i, path := range input.Paths {
		sources[i] = driving.DocumentSource{Path: path}
	}

	docs, err := s.ports.Ingest.LoadDocuments(ctx, sources)
	if err != nil {
		return nil, LoadDocumentsOutput{}, err
	}

	output := LoadDocumentsOutput{
		Documents: make([]LoadedDocumentOutput, len(docs)),
		Chunks:    s.ports.Ingest.ChunkCount(),
	}
	for i := range docs {
		output.Documents[i] = LoadedDocumentOutput{
			Name:   docs[i].Name,
			Pages:  docs[i].Pages,
			Chunks: docs[i].Chunks,
		}
	}
	return nil, output, nil
}

// handleClearDocuments handles the clear_documents tool invocation.
func (s *Server) handleClearDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.ports.Ingest.ClearDocuments(ctx); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Status: "documents cleared"}, nil
}

// handleResetConversation handles the reset_conversation tool invocation.
func (s *Server) handleResetConversation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	s.ports.Chat.ResetConversation()
	return nil, StatusOutput{Status: "conversation reset"}, nil
}
