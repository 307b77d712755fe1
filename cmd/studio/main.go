package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"varia/internal/adapters/claudecli"
	"varia/internal/adapters/sqlite"
	"varia/internal/adapters/tui"
	"varia/internal/application"
	"varia/internal/config"
)

func main() {
	archive := sqlite.NewArchive()
	if err := archive.Open(""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	studio := application.NewStudio(config.Studio(), archive, config.MaxHistorySize())
	if err := studio.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	assistant := claudecli.NewAssistant(claudecli.WithModel(config.Model()))

	app := tui.NewApp(studio, assistant)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
