package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"varia/internal/application/commands"
	"varia/internal/domain"
)

var gotoCmd = &cobra.Command{
	Use:   "goto <node-id>",
	Short: "Jump to a node, switching branch if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewGotoCommand(GetStudio().Graph, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		return finishNav(res)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Move to the current node's parent",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewUndoCommand(GetStudio().Graph).Execute(context.Background())
		if err != nil {
			return err
		}
		return finishNav(res)
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Move to the current node's first child",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewRedoCommand(GetStudio().Graph).Execute(context.Background())
		if err != nil {
			return err
		}
		return finishNav(res)
	},
}

func finishNav(res domain.NavigationResult) error {
	if res.Success {
		if err := saveStudio(); err != nil {
			return err
		}
	}
	printNav(res)
	return nil
}

func init() {
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}
