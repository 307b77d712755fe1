package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"varia/internal/adapters/tui/styles"
)

// HelpModel shows key bindings.
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			return m, func() tea.Msg { return SwitchToFeedMsg{} }
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Feed", [][2]string{
			{"wheel / drag", "scroll through variations"},
			{"j/↓, k/↑", "nudge forward / back"},
			{"u / r", "undo / redo"},
			{"a", "ask the AI for a variation"},
			{"y", "copy snapshot JSON to clipboard"},
			{"d", "diff current node vs parent"},
			{"b", "branches"},
		}},
		{"Branches", [][2]string{
			{"enter", "switch to branch"},
			{"n", "new branch at current node"},
		}},
		{"Everywhere", [][2]string{
			{"esc", "back to feed"},
			{"q", "quit"},
		}},
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Help"))
	sb.WriteString("\n")
	for _, sec := range sections {
		sb.WriteString(styles.BranchName.Render(sec.title) + "\n")
		for _, k := range sec.keys {
			sb.WriteString("  " + styles.CardID.Render(padRight(k[0], 14)) + styles.CardMeta.Render(k[1]) + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(styles.StatusBar.Render("any key to go back"))
	return styles.App.Render(sb.String())
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
