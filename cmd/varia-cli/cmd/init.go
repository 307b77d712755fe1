package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"varia/internal/application/commands"
)

var initDescription string

var initCmd = &cobra.Command{
	Use:   "init [snapshot.json]",
	Short: "Initialize the studio with a root snapshot",
	Long: `Initialize the studio's history with a root design snapshot.

The snapshot is read from the given file, or from stdin when the
argument is omitted or "-". Any existing history in this studio is
replaced.

Examples:
  varia-cli init design.json -m "landing page v1"
  cat design.json | varia-cli init`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := readSnapshotArg(args)
		if err != nil {
			return err
		}

		result, err := commands.NewInitCommand(GetStudio().Graph, snapshot, initDescription).Execute(context.Background())
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
	initCmd.Flags().StringVarP(&initDescription, "message", "m", "", "description of the starting point")
	rootCmd.AddCommand(initCmd)
}
