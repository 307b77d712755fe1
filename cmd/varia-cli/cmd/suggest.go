package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"varia/internal/adapters/claudecli"
	"varia/internal/application/commands"
	"varia/internal/config"
)

var suggestModel string

var suggestCmd = &cobra.Command{
	Use:   "suggest <instruction...>",
	Short: "Ask the AI for a variation of the current snapshot",
	Long: `Send the current snapshot and an instruction to the Claude CLI and
commit the returned variation under the current node with source "ai".

Examples:
  varia-cli suggest make the palette warmer
  varia-cli suggest --model sonnet simplify the layout`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant := claudecli.NewAssistant(claudecli.WithModel(suggestModel))
		instruction := strings.Join(args, " ")

		result, err := commands.NewSuggestCommand(GetStudio().Graph, assistant, instruction).Execute(context.Background())
		if err != nil {
			return err
		}
		if err := saveStudio(); err != nil {
			return err
		}

		fmt.Println(result.Message)
		if result.Reasoning != "" {
			fmt.Printf("  %s (confidence %.2f)\n", result.Reasoning, result.Confidence)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestModel, "model", config.Model(), "claude model to use")
	rootCmd.AddCommand(suggestCmd)
}
