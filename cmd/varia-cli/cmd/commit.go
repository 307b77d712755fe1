package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"varia/internal/application/commands"
)

var (
	commitDescription string
	commitParentID    string
)

var commitCmd = &cobra.Command{
	Use:   "commit [snapshot.json]",
	Short: "Commit a design snapshot as a new variation",
	Long: `Commit a complete design snapshot under a parent node.

The snapshot is read from the given file, or from stdin when the
argument is omitted or "-". Without --parent the snapshot attaches
under the current node; committing under a mid-chain parent forks a
new branch automatically.

Examples:
  varia-cli commit design.json -m "bolder header"
  varia-cli commit design.json --parent n-1a2b3c4d`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := readSnapshotArg(args)
		if err != nil {
			return err
		}

		c := commands.NewCommitCommand(GetStudio().Graph, snapshot, commitParentID, commitDescription)
		result, err := c.Execute(context.Background())
		if err != nil {
			return err
		}
		if err := saveStudio(); err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	commitCmd.Flags().StringVarP(&commitDescription, "message", "m", "", "one-line description of the change")
	commitCmd.Flags().StringVar(&commitParentID, "parent", "", "parent node id (default: current node)")
	rootCmd.AddCommand(commitCmd)
}
