// Package cli implements the docuspark command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anjali642004/docuspark-cli/internal/adapters/driven/ai"
	configfile "github.com/anjali642004/docuspark-cli/internal/adapters/driven/config/file"
	"github.com/anjali642004/docuspark-cli/internal/adapters/driven/extractor/pdfcpu"
	"github.com/anjali642004/docuspark-cli/internal/adapters/driven/vector/memory"
	"github.com/anjali642004/docuspark-cli/internal/chunker"
	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
	"github.com/anjali642004/docuspark-cli/internal/core/services"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose    bool
	flagConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "docuspark",
	Short: "Ask questions over your PDF documents",
	Long: `Docuspark loads PDF documents, indexes their content, and answers
questions about them in a multi-turn conversation. Answers are grounded
in the most relevant passages of the loaded documents.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file (default ~/.docuspark/config.toml)")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired services for one command invocation.
type app struct {
	cfg      *configfile.Config
	services *ai.Services
	session  *domain.Session
	ingest   driving.IngestService
	chat     driving.ChatService
	retrieve driving.RetrievalService
}

// close releases the AI adapters.
func (a *app) close() {
	if a.services != nil {
		a.services.Close()
	}
}

// loadConfig resolves the config path and loads the configuration.
func loadConfig() (*configfile.Config, string, error) {
	path := flagConfigPath
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return nil, "", fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := configfile.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// buildApp wires the full pipeline: config, AI adapters, splitter,
// index, and the core services. The caller owns close().
func buildApp(ctx context.Context) (*app, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	aiServices, err := ai.NewServices(ctx, cfg)
	if err != nil {
		return nil, err
	}

	splitter, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		aiServices.Close()
		return nil, err
	}

	session := domain.NewSession()
	index := memory.NewIndex()

	ingest := services.NewIngestService(
		session,
		pdfcpu.New(),
		aiServices.Embedding,
		index,
		splitter,
		services.IngestConfig{
			MaxSourceBytes: cfg.Ingest.MaxSourceBytes,
			EmbedBatchSize: cfg.Ingest.EmbedBatchSize,
		},
	)

	retriever := services.NewRetriever(aiServices.Embedding, index, cfg.Retrieval.TopK)

	chat := services.NewChatService(session, retriever, aiServices.LLM, index, services.ChatConfig{
		HistoryWindow: cfg.Chat.HistoryWindow,
		MaxTokens:     cfg.Chat.MaxTokens,
		Temperature:   cfg.Chat.Temperature,
	})

	return &app{
		cfg:      cfg,
		services: aiServices,
		session:  session,
		ingest:   ingest,
		chat:     chat,
		retrieve: retriever,
	}, nil
}
