package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"varia/internal/adapters/tui/views"
	"varia/internal/application"
	"varia/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewFeed ViewState = iota
	ViewBranches
	ViewDiff
	ViewHelp
)

// App is the main TUI application model
type App struct {
	studio *application.Studio

	state    ViewState
	feed     *views.FeedModel
	branches *views.BranchesModel
	diff     *views.DiffModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(studio *application.Studio, assistant ports.DesignAssistant) *App {
	return &App{
		studio:   studio,
		state:    ViewFeed,
		feed:     views.NewFeedModel(studio, assistant),
		branches: views.NewBranchesModel(studio),
		diff:     views.NewDiffModel(studio),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.feed.SetSize(msg.Width, msg.Height)
		a.branches.SetSize(msg.Width, msg.Height)
		a.diff.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToFeedMsg:
		a.state = ViewFeed
		return a, nil

	case views.SwitchToBranchesMsg:
		a.state = ViewBranches
		return a, a.branches.Init()

	case views.SwitchToDiffMsg:
		a.state = ViewDiff
		a.diff.SetNodes(msg.AID, msg.BID)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil
	}

	// Delegate to current view. The feed keeps receiving ticks and
	// assistant replies even while another view is on screen, so its
	// animation and pending generation never stall.
	var cmd tea.Cmd
	switch a.state {
	case ViewFeed:
		_, cmd = a.feed.Update(msg)
	case ViewBranches:
		_, cmd = a.branches.Update(msg)
	case ViewDiff:
		_, cmd = a.diff.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	if a.state != ViewFeed {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg, tea.WindowSizeMsg:
		default:
			_, feedCmd := a.feed.Update(msg)
			cmd = tea.Batch(cmd, feedCmd)
		}
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewBranches:
		return a.branches.View()
	case ViewDiff:
		return a.diff.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.feed.View()
	}
}
