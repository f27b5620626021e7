// Package gemini provides an LLM service adapter using the Gemini API
// via the google.golang.org/genai client.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the default generation model.
const DefaultModel = "gemini-2.0-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Google API key (required).
	APIKey string

	// Model is the generation model (default: gemini-2.0-flash).
	Model string
}

// LLMService generates text using the Gemini API.
type LLMService struct {
	client *genai.Client
	model  string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini generation requires an API key", domain.ErrMissingCredential)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %v", domain.ErrGenerationFailed, err)
	}

	return &LLMService{client: client, model: cfg.Model}, nil
}

// Generate produces a text completion from a single prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	messages := []driven.ChatMessage{{Role: "user", Content: prompt}}
	return s.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
}

// Chat conducts a multi-turn conversation. A "system" message becomes
// the system instruction; "assistant" maps to the Gemini "model" role.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	var systemText string
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemText = msg.Content
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(contents) == 0 {
		return "", fmt.Errorf("%w: no messages to send", domain.ErrGenerationFailed)
	}

	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	var out strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrGenerationFailed)
	}
	return out.String(), nil
}

// ModelName returns the name of the model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable with a minimal generation.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Generate(ctx, "ping", driven.GenerateOptions{MaxTokens: 8})
	return err
}

// Close releases resources. The genai client needs no explicit shutdown.
func (s *LLMService) Close() error {
	s.client = nil
	return nil
}
