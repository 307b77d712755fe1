package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"varia/internal/domain"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the timeline from root to the current branch tip",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := GetStudio().Graph
		if !graph.Initialized() {
			return fmt.Errorf("history is not initialized (run `varia-cli init` first)")
		}

		current := graph.CurrentNode()
		for _, n := range graph.Timeline() {
			marker := " "
			if n.ID == current.ID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  [%-6s] %s  %s\n",
				marker, n.ID,
				n.Timestamp.Format("2006-01-02 15:04"),
				n.Metadata.Source, n.BranchName, n.Metadata.Description)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [node-id]",
	Short: "Show a node's metadata and snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := GetStudio().Graph

		var node *domain.HistoryNode
		if len(args) == 0 {
			node = graph.CurrentNode()
			if node == nil {
				return fmt.Errorf("history is not initialized")
			}
		} else {
			var ok bool
			node, ok = graph.Node(args[0])
			if !ok {
				return fmt.Errorf("node not found: %s", args[0])
			}
		}

		snapshot, err := node.Snapshot.JSON()
		if err != nil {
			return err
		}

		fmt.Printf("id:      %s\n", node.ID)
		fmt.Printf("parent:  %s\n", node.ParentID)
		fmt.Printf("branch:  %s\n", node.BranchName)
		fmt.Printf("source:  %s\n", node.Metadata.Source)
		fmt.Printf("created: %s\n", node.Timestamp.Format("2006-01-02 15:04:05"))
		if node.Metadata.Description != "" {
			fmt.Printf("message: %s\n", node.Metadata.Description)
		}
		if node.Metadata.Source == domain.SourceAI {
			fmt.Printf("confidence: %.2f\n", node.Metadata.Confidence)
			fmt.Printf("prompt:     %s\n", node.Metadata.AIPrompt)
		}
		if len(node.Children) > 0 {
			fmt.Printf("children: %s\n", strings.Join(node.Children, ", "))
		}
		fmt.Printf("snapshot:\n%s\n", snapshot)
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <node-id>",
	Short: "Show the path from the root to a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := GetStudio().Graph.PathToNode(args[0])
		if err != nil {
			return err
		}
		for i, n := range path {
			fmt.Printf("%d. %s  [%s] %s\n", i, n.ID, n.BranchName, n.Metadata.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pathCmd)
}
