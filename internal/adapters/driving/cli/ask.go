package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
)

var (
	askFiles []string
	askJSON  bool
	askTopK  int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question over documents",
	Long: `Loads the given documents, answers one question, and exits.

Examples:
  docuspark ask -f report.pdf "What were the Q3 revenue figures?"
  docuspark ask -f a.pdf -f b.pdf --json "Summarise the findings"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringSliceVarP(&askFiles, "file", "f", nil, "document to load (repeatable)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := cmd.Context()

	application, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer application.close()

	if len(askFiles) > 0 {
		sources := make([]driving.DocumentSource, len(askFiles))
		for i, path := range askFiles {
			sources[i] = driving.DocumentSource{Path: path}
		}
		if _, err := application.ingest.LoadDocuments(ctx, sources); err != nil {
			return fmt.Errorf("loading documents: %w", err)
		}
	}

	answer, err := application.chat.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		out := struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		}{Question: question, Answer: answer}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer)
	return nil
}
