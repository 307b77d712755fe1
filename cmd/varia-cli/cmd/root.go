package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"varia/internal/adapters/sqlite"
	"varia/internal/application"
	"varia/internal/config"
	"varia/internal/domain"
)

var (
	studioName string
	dbPath     string

	archive *sqlite.Archive
	studio  *application.Studio
)

var rootCmd = &cobra.Command{
	Use:   "varia-cli",
	Short: "CLI for branching design history",
	Long: `varia-cli manages a branching history of design snapshots: a DAG of
immutable states with git-like branches, undo/redo, diffing, and
import/export.

Each studio is an independent history persisted in a local SQLite
archive. AI collaborators attach variations through the companion
varia-mcp server; this CLI is the human channel.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		archive = sqlite.NewArchive()
		if err := archive.Open(dbPath); err != nil {
			return err
		}
		studio = application.NewStudio(studioName, archive, config.MaxHistorySize())
		return studio.Load()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if archive == nil {
			return nil
		}
		return archive.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&studioName, "studio", "s", config.Studio(), "studio (history) to operate on")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the archive database (default: XDG data dir)")
}

// GetStudio returns the loaded studio
func GetStudio() *application.Studio {
	return studio
}

// saveStudio persists the graph after a mutating command.
func saveStudio() error {
	return studio.Save()
}

// printNav reports a navigation outcome; boundary refusals are not errors.
func printNav(res domain.NavigationResult) {
	if !res.Success {
		fmt.Printf("not moved: %s\n", res.Reason)
		return
	}
	fmt.Printf("now at %s on branch %s\n", res.Node.ID, res.Node.BranchName)
}

// readSnapshotArg reads snapshot JSON from the file argument, or stdin
// when the argument is absent or "-".
func readSnapshotArg(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return data, nil
}
