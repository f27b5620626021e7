package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anjali642004/docuspark-cli/internal/core/domain"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

var (
	retrieveFiles []string
	retrieveLimit int
	retrieveJSON  bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Show the chunks most similar to a query",
	Long: `Loads the given documents and prints the chunks most similar to the
query, without generating an answer. Useful for inspecting what the
conversation commands would ground their answers on.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().StringSliceVarP(&retrieveFiles, "file", "f", nil, "document to load (repeatable)")
	retrieveCmd.Flags().IntVarP(&retrieveLimit, "limit", "n", 0, "maximum number of chunks (0 = configured default)")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output chunks as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := cmd.Context()

	application, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer application.close()

	if len(retrieveFiles) > 0 {
		sources := make([]driving.DocumentSource, len(retrieveFiles))
		for i, path := range retrieveFiles {
			sources[i] = driving.DocumentSource{Path: path}
		}
		if _, err := application.ingest.LoadDocuments(ctx, sources); err != nil {
			return fmt.Errorf("loading documents: %w", err)
		}
	}

	hits, err := application.retrieve.Retrieve(ctx, query, retrieveLimit)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if retrieveJSON {
		return outputRetrieveJSON(cmd, hits)
	}
	return outputRetrieveTable(cmd, hits)
}

func outputRetrieveJSON(cmd *cobra.Command, hits []domain.RetrievedChunk) error {
	type chunkOut struct {
		Source string  `json:"source"`
		Page   int     `json:"page"`
		Score  float64 `json:"score"`
		Text   string  `json:"text"`
	}
	out := make([]chunkOut, len(hits))
	for i := range hits {
		out[i] = chunkOut{
			Source: hits[i].Chunk.SourceName,
			Page:   hits[i].Chunk.PageNumber,
			Score:  hits[i].Score,
			Text:   hits[i].Chunk.Text,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chunks: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRetrieveTable(cmd *cobra.Command, hits []domain.RetrievedChunk) error {
	if len(hits) == 0 {
		cmd.Println("No matching chunks.")
		return nil
	}

	cmd.Println("Chunks:")
	cmd.Println()
	for i := range hits {
		cmd.Printf("  [%d] %s p.%d (%.3f)\n", i+1, hits[i].Chunk.SourceName, hits[i].Chunk.PageNumber, hits[i].Score)
		cmd.Printf("      %s\n", snippet(hits[i].Chunk.Text, 200))
		cmd.Println()
	}
	return nil
}

// snippet trims text to at most n bytes on a rune boundary.
func snippet(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := text[:n]
	for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
		cut = cut[:len(cut)-1]
	}
	return cut + "..."
}
