// Package gemini provides an embedding service adapter using the Gemini
// API via the google.golang.org/genai client.
package gemini

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "gemini-embedding-001"
	DefaultDimensions = 768

	// DefaultRequestsPerSecond limits batch calls during bulk ingestion.
	DefaultRequestsPerSecond = 5
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Google API key (required).
	APIKey string

	// Model is the embedding model (default: gemini-embedding-001).
	Model string

	// Dimensions is the output dimensionality (default: 768).
	Dimensions int

	// RequestsPerSecond throttles batch calls; 0 uses the default.
	RequestsPerSecond float64
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client     *genai.Client
	model      string
	dimensions int
	limiter    *rate.Limiter
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini embedding requires an API key", domain.ErrMissingCredential)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %v", domain.ErrEmbeddingUnavailable, err)
	}

	return &EmbeddingService{
		client:     client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// Embed generates a vector embedding for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", domain.ErrEmbeddingUnavailable)
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call,
// same length and order as the input.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	outputDim := int32(s.dimensions)
	result, err := s.client.Models.EmbedContent(ctx, s.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &outputDim,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", domain.ErrEmbeddingUnavailable, len(texts), got)
	}

	embeddings := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) != s.dimensions {
			return nil, fmt.Errorf("%w: embedding %d has wrong dimension", domain.ErrEmbeddingUnavailable, i)
		}
		embeddings[i] = emb.Values
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by embedding a trivial text.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping")
	return err
}

// Close releases resources. The genai client needs no explicit shutdown.
func (s *EmbeddingService) Close() error {
	s.client = nil
	return nil
}
