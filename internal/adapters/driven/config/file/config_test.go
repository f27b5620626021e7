package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(EnvGoogleAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, cfg.Chunking.Size)
	assert.Equal(t, DefaultOverlap, cfg.Chunking.Overlap)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, DefaultHistoryWindow, cfg.Chat.HistoryWindow)
	assert.Equal(t, DefaultMaxTokens, cfg.Chat.MaxTokens)
	assert.Equal(t, DefaultMaxSourceBytes, cfg.Ingest.MaxSourceBytes)
	assert.Equal(t, DefaultEmbedBatchSize, cfg.Ingest.EmbedBatchSize)
	assert.Equal(t, DefaultProvider, cfg.AI.Provider)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvGoogleAPIKey, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[chunking]
size = 500

[retrieval]
top_k = 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Chunking.Size)
	assert.Equal(t, 7, cfg.Retrieval.TopK)
	// Untouched sections fall back to defaults.
	assert.Equal(t, DefaultHistoryWindow, cfg.Chat.HistoryWindow)
	assert.Equal(t, DefaultProvider, cfg.AI.Provider)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvironmentKeyOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ai]
provider = "anthropic"
api_key = "file-key"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv(EnvAnthropicAPIKey, "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.AI.APIKey)
}

func TestLoad_FileKeyUsedWhenEnvironmentUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ai]
provider = "openai"
api_key = "file-key"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv(EnvOpenAIAPIKey, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.AI.APIKey)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv(EnvGoogleAPIKey, "")

	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := defaults()
	cfg.Chunking.Size = 750
	cfg.Chat.Temperature = 0.3
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 750, loaded.Chunking.Size)
	assert.Equal(t, 0.3, loaded.Chat.Temperature)
}

func TestRequireCredential(t *testing.T) {
	cfg := defaults()
	cfg.AI.APIKey = ""
	err := cfg.RequireCredential()
	require.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Contains(t, err.Error(), EnvGoogleAPIKey)

	cfg.AI.APIKey = "some-key"
	assert.NoError(t, cfg.RequireCredential())
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Contains(t, path, ".docuspark")
	assert.Equal(t, "config.toml", filepath.Base(path))
}
