package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and edit the Docuspark configuration.

Settings live in a TOML file (default ~/.docuspark/config.toml). API
keys are read from the environment or a .env file; set-key stores one
in the config file instead.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store an API key in the config file",
	Long: `Prompt for an API key without echo and store it in the config file.

The key applies to the configured provider. Environment variables still
take precedence when set.`,
	RunE: runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Printf("Configuration (%s)\n", path)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d bytes\n", cfg.Chunking.Size)
	cmd.Printf("  Overlap: %d bytes\n", cfg.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", cfg.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Chat]")
	cmd.Printf("  History window: %d turns\n", cfg.Chat.HistoryWindow)
	cmd.Printf("  Max tokens: %d\n", cfg.Chat.MaxTokens)
	cmd.Printf("  Temperature: %g\n", cfg.Chat.Temperature)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Max source size: %d bytes\n", cfg.Ingest.MaxSourceBytes)
	cmd.Printf("  Embed batch size: %d\n", cfg.Ingest.EmbedBatchSize)
	cmd.Println()

	cmd.Println("[AI]")
	cmd.Printf("  Provider: %s\n", cfg.AI.Provider)
	if cfg.AI.Model != "" {
		cmd.Printf("  Model: %s\n", cfg.AI.Model)
	}
	if cfg.AI.EmbeddingModel != "" {
		cmd.Printf("  Embedding model: %s\n", cfg.AI.EmbeddingModel)
	}
	if cfg.AI.EmbeddingDimensions > 0 {
		cmd.Printf("  Embedding dimensions: %d\n", cfg.AI.EmbeddingDimensions)
	}
	if cfg.AI.APIKey != "" {
		cmd.Printf("  API key: %s\n", maskAPIKey(cfg.AI.APIKey))
	} else {
		cmd.Printf("  API key: (not set)\n")
	}

	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Printf("API key for provider %q: ", cfg.AI.Provider)
	key := readSecret()
	cmd.Println()
	if key == "" {
		return fmt.Errorf("no key entered")
	}

	cfg.AI.APIKey = key
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Stored %s in %s\n", maskAPIKey(key), path)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Read without echo when stdin is a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
