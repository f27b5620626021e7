// Package file loads and persists the DocuSpark configuration.
// Settings live in a TOML file (default ~/.docuspark/config.toml);
// API keys are resolved from the environment, with a .env file in the
// working directory loaded first.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultChunkSize      = 1000
	DefaultOverlap        = 200
	DefaultTopK           = 4
	DefaultHistoryWindow  = 8
	DefaultMaxTokens      = 1024
	DefaultEmbedBatchSize = 64
	DefaultProvider       = "gemini"

	// DefaultMaxSourceBytes caps a single source document at 2 GiB,
	// checked before any extraction is attempted.
	DefaultMaxSourceBytes int64 = 2 << 30
)

// Environment variables holding provider API keys.
const (
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
)

// ChunkingConfig configures how documents are split into chunks.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig configures top-k chunk retrieval.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// ChatConfig configures prompt assembly and generation.
type ChatConfig struct {
	// HistoryWindow bounds how many prior turns enter the prompt;
	// oldest turns are dropped first.
	HistoryWindow int     `toml:"history_window"`
	MaxTokens     int     `toml:"max_tokens"`
	Temperature   float64 `toml:"temperature"`
}

// IngestConfig configures document ingestion.
type IngestConfig struct {
	MaxSourceBytes int64 `toml:"max_source_bytes"`
	EmbedBatchSize int   `toml:"embed_batch_size"`
}

// AIConfig selects and configures the embedding and generation providers.
type AIConfig struct {
	// Provider is "gemini", "anthropic", or "openai". Gemini serves both
	// embeddings and generation; Anthropic has no embedding API, so the
	// embedding side falls back to Gemini or OpenAI by available key.
	Provider string `toml:"provider"`

	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`

	// EmbeddingDimensions overrides the model's default dimensionality.
	EmbeddingDimensions int `toml:"embedding_dimensions"`

	// APIKey may be set in the file; the matching environment variable
	// takes precedence.
	APIKey string `toml:"api_key,omitempty"`
}

// Config is the root configuration.
type Config struct {
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Chat      ChatConfig      `toml:"chat"`
	Ingest    IngestConfig    `toml:"ingest"`
	AI        AIConfig        `toml:"ai"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docuspark", "config.toml"), nil
}

// Load reads configuration from path. A missing file yields defaults.
// A .env file in the working directory is loaded into the environment
// first, then API keys are resolved from the environment.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; the environment may already be set.
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		applyDefaults(cfg)
	}

	if key := keyFromEnv(cfg.AI.Provider); key != "" {
		cfg.AI.APIKey = key
	}
	return cfg, nil
}

// Save writes the configuration to path, creating directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// RequireCredential fails with domain.ErrMissingCredential when no API
// key is configured for the selected provider.
func (c *Config) RequireCredential() error {
	if c.AI.APIKey != "" {
		return nil
	}
	return fmt.Errorf("%w: set %s for provider %q (or ai.api_key in the config file)",
		domain.ErrMissingCredential, envVarFor(c.AI.Provider), c.AI.Provider)
}

func defaults() *Config {
	return &Config{
		Chunking:  ChunkingConfig{Size: DefaultChunkSize, Overlap: DefaultOverlap},
		Retrieval: RetrievalConfig{TopK: DefaultTopK},
		Chat:      ChatConfig{HistoryWindow: DefaultHistoryWindow, MaxTokens: DefaultMaxTokens},
		Ingest:    IngestConfig{MaxSourceBytes: DefaultMaxSourceBytes, EmbedBatchSize: DefaultEmbedBatchSize},
		AI:        AIConfig{Provider: DefaultProvider},
	}
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = DefaultChunkSize
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}
	if cfg.Chat.HistoryWindow == 0 {
		cfg.Chat.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = DefaultMaxTokens
	}
	if cfg.Ingest.MaxSourceBytes == 0 {
		cfg.Ingest.MaxSourceBytes = DefaultMaxSourceBytes
	}
	if cfg.Ingest.EmbedBatchSize == 0 {
		cfg.Ingest.EmbedBatchSize = DefaultEmbedBatchSize
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = DefaultProvider
	}
}

func envVarFor(provider string) string {
	switch provider {
	case "anthropic":
		return EnvAnthropicAPIKey
	case "openai":
		return EnvOpenAIAPIKey
	default:
		return EnvGoogleAPIKey
	}
}

func keyFromEnv(provider string) string {
	return os.Getenv(envVarFor(provider))
}
