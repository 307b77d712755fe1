package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"varia/internal/application/commands"
)

var (
	branchBaseID string
	branchColor  string
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "List branches, or create one",
	Long: `Without arguments, list all branches. With a name, create a branch
based at the current node (or --base) without switching to it.

Examples:
  varia-cli branch
  varia-cli branch warm-palette
  varia-cli branch warm-palette --base n-1a2b3c4d`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listBranches()
		}

		c := commands.NewCreateBranchCommand(GetStudio().Graph, args[0], branchBaseID, branchColor)
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

func listBranches() error {
	branches := GetStudio().Graph.Branches()
	if len(branches) == 0 {
		fmt.Println("No branches (history not initialized).")
		return nil
	}
	for _, b := range branches {
		marker := " "
		if b.IsActive {
			marker = "*"
		}
		fmt.Printf("%s %-20s base=%s tip=%s nodes=%d\n",
			marker, b.Name, b.BaseNodeID, b.Tip(), len(b.Nodes))
	}
	return nil
}

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch to a branch and move to its tip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewSwitchBranchCommand(GetStudio().Graph, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		if res.Success {
			if err := saveStudio(); err != nil {
				return err
			}
		}
		printNav(res)
		return nil
	},
}

func init() {
	branchCmd.Flags().StringVar(&branchBaseID, "base", "", "base node id (default: current node)")
	branchCmd.Flags().StringVar(&branchColor, "color", "", "display color for the branch")
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(switchCmd)
}
