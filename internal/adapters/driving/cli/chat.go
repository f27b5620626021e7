package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/anjali642004/docuspark-cli/internal/adapters/driving/tui"
	"github.com/anjali642004/docuspark-cli/internal/core/ports/driving"
	"github.com/anjali642004/docuspark-cli/internal/logger"
)

var chatWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat [files...]",
	Short: "Start an interactive conversation over documents",
	Long: `Load the given PDF documents and start an interactive conversation.

Questions are answered from the most relevant passages of the loaded
documents, with sources cited by document and page.

Controls:
  Enter   - Ask the question
  Ctrl+R  - Reset the conversation (documents stay loaded)
  Ctrl+X  - Clear the loaded documents (conversation stays)
  Ctrl+C  - Quit

With --watch, documents that change on disk are re-ingested while the
conversation runs.`,
	Args: cobra.ArbitraryArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVarP(&chatWatch, "watch", "w", false, "re-ingest documents when they change on disk")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	// Panic recovery so terminal state is restored with a usable trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := cmd.Context()

	application, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer application.close()

	// Surface credential and connectivity problems before the first question.
	if err := application.services.Validate(ctx); err != nil {
		return err
	}

	if len(args) > 0 {
		sources := make([]driving.DocumentSource, len(args))
		for i, path := range args {
			sources[i] = driving.DocumentSource{Path: path}
		}
		docs, err := application.ingest.LoadDocuments(ctx, sources)
		if err != nil && len(docs) == 0 {
			return fmt.Errorf("loading documents: %w", err)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Some documents failed to load: %v\n", err)
		}
	}

	model, err := tui.New(ctx, &tui.Ports{
		Chat:   application.chat,
		Ingest: application.ingest,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if chatWatch && len(args) > 0 {
		stop, err := watchDocuments(args, p)
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}

// watchDocuments sends a ReloadMsg into the program whenever one of the
// given files is written. Returns a stop function closing the watcher.
func watchDocuments(paths []string, p *tea.Program) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		watched[abs] = true
		// Watch the directory; editors often replace files on save,
		// which drops a watch registered on the file itself.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil || !watched[abs] {
					continue
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					logger.Debug("Document changed: %s", abs)
					p.Send(tui.ReloadMsg{Path: abs})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("File watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
