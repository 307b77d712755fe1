package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"varia/internal/application/commands"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history as JSON",
	Long: `Export the complete history graph (nodes, branches, pointers) as a
versioned JSON document, to stdout or --output.

Example:
  varia-cli export -o history.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := commands.NewExportCommand(GetStudio().Graph).Execute(context.Background())
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("exported to %s\n", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <history.json>",
	Short: "Replace the studio's history from an export",
	Long: `Import a previously exported history document, replacing the studio's
current graph. The document is validated in full before anything is
touched; a malformed export leaves the existing history intact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		if err := commands.NewImportCommand(GetStudio().Graph, data).Execute(context.Background()); err != nil {
			return err
		}
		if err := saveStudio(); err != nil {
			return err
		}
		fmt.Printf("imported %d nodes\n", GetStudio().Graph.NodeCount())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the export to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
