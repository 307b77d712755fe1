package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prunedCmd = &cobra.Command{
	Use:   "pruned",
	Short: "List nodes evicted to cold storage",
	Long: `List nodes that were pruned from the in-memory graph when it reached
its size limit. Pruned nodes are kept in the archive and can still be
inspected here.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := GetStudio().Archive.PrunedNodes(studioName)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			fmt.Println("No pruned nodes.")
			return nil
		}
		for _, n := range nodes {
			fmt.Printf("%s  %s  [%s] %s  %s\n",
				n.ID, n.Timestamp.Format("2006-01-02 15:04"),
				n.Metadata.Source, n.BranchName, n.Metadata.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prunedCmd)
}
