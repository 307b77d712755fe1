package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"varia/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the full history graph",
	Long: `Display the complete history DAG from the root, one node per line,
indented by depth. The current node is marked with *.

Example:
  varia-cli tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := GetStudio().Graph
		root := graph.RootNode()
		if root == nil {
			return fmt.Errorf("history is not initialized")
		}

		printTree(graph, root, 0)
		return nil
	},
}

func printTree(graph *domain.Graph, node *domain.HistoryNode, depth int) {
	marker := " "
	if current := graph.CurrentNode(); current != nil && current.ID == node.ID {
		marker = "*"
	}

	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s  [%s] %s  %s\n",
		indent, marker, node.ID, node.Metadata.Source, node.BranchName, node.Metadata.Description)

	for _, childID := range node.Children {
		if child, ok := graph.Node(childID); ok {
			printTree(graph, child, depth+1)
		}
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
