package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"varia/internal/application/commands"
)

var diffCmd = &cobra.Command{
	Use:   "diff <node-a> <node-b>",
	Short: "Compare two snapshots",
	Long: `Compare the snapshots of two nodes and print the structural changes
(layers added/removed/modified, canvas resized, metadata changed) plus
a 0-1 similarity score.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDiffCommand(GetStudio().Graph, args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("similarity: %.2f\n", result.Similarity)
		if len(result.Changes) == 0 {
			fmt.Println("no changes")
			return nil
		}
		for _, ch := range result.Changes {
			fmt.Printf("%-18s %s\n", ch.Type, ch.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
