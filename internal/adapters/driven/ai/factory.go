// Package ai provides factory functions for creating the embedding and
// generation adapters from configuration, and validates credentials once
// at session start.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anjali642004/docuspark-cli/internal/adapters/driven/config/file"
	geminiembed "github.com/anjali642004/docuspark-cli/internal/adapters/driven/embedding/gemini"
	openaiembed "github.com/anjali642004/docuspark-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/anjali642004/docuspark-cli/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/anjali642004/docuspark-cli/internal/adapters/driven/llm/gemini"
	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// Services bundles the AI adapters built from one configuration.
type Services struct {
	Embedding driven.EmbeddingService
	LLM       driven.LLMService
}

// Close releases all resources held by the services.
func (s *Services) Close() {
	if s.Embedding != nil {
		s.Embedding.Close()
	}
	if s.LLM != nil {
		s.LLM.Close()
	}
}

// NewServices builds the embedding and generation adapters for the
// configured provider. A missing API key fails with
// domain.ErrMissingCredential before any network traffic.
func NewServices(ctx context.Context, cfg *file.Config) (*Services, error) {
	llm, err := newLLMService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	embedding, err := newEmbeddingService(ctx, cfg)
	if err != nil {
		llm.Close()
		return nil, err
	}

	logger.Debug("AI services: llm=%s embedding=%s (%d dims)",
		llm.ModelName(), embedding.ModelName(), embedding.Dimensions())

	return &Services{Embedding: embedding, LLM: llm}, nil
}

// Validate pings both services with a short timeout so transport and
// auth problems surface at session start rather than mid-conversation.
func (s *Services) Validate(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.Embedding.Ping(pingCtx); err != nil {
		return fmt.Errorf("embedding service unreachable: %w", err)
	}
	if err := s.LLM.Ping(pingCtx); err != nil {
		return fmt.Errorf("generation service unreachable: %w", err)
	}
	return nil
}

func newLLMService(ctx context.Context, cfg *file.Config) (driven.LLMService, error) {
	if err := cfg.RequireCredential(); err != nil {
		return nil, err
	}

	switch cfg.AI.Provider {
	case "anthropic":
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey: cfg.AI.APIKey,
			Model:  cfg.AI.Model,
		})
	case "gemini", "":
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey: cfg.AI.APIKey,
			Model:  cfg.AI.Model,
		})
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}

// newEmbeddingService picks the embedding backend. Gemini and OpenAI
// serve their own embeddings; Anthropic has no embedding API, so that
// provider borrows whichever embedding key is available.
func newEmbeddingService(ctx context.Context, cfg *file.Config) (driven.EmbeddingService, error) {
	switch cfg.AI.Provider {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.EmbeddingModel,
			Dimensions: cfg.AI.EmbeddingDimensions,
		})
	case "gemini", "":
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.EmbeddingModel,
			Dimensions: cfg.AI.EmbeddingDimensions,
		})
	case "anthropic":
		if key := os.Getenv(file.EnvGoogleAPIKey); key != "" {
			return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
				APIKey:     key,
				Model:      cfg.AI.EmbeddingModel,
				Dimensions: cfg.AI.EmbeddingDimensions,
			})
		}
		if key := os.Getenv(file.EnvOpenAIAPIKey); key != "" {
			return openaiembed.NewEmbeddingService(openaiembed.Config{
				APIKey:     key,
				Model:      cfg.AI.EmbeddingModel,
				Dimensions: cfg.AI.EmbeddingDimensions,
			})
		}
		return nil, fmt.Errorf("%w: provider anthropic needs %s or %s for embeddings",
			domain.ErrMissingCredential, file.EnvGoogleAPIKey, file.EnvOpenAIAPIKey)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}
