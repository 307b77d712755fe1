package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"varia/internal/adapters/tui/styles"
	"varia/internal/application"
	"varia/internal/domain"
)

// DiffModel renders the structural diff between two snapshots.
type DiffModel struct {
	studio *application.Studio

	aID string
	bID string

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	errText  string
}

// NewDiffModel creates a new diff view
func NewDiffModel(studio *application.Studio) *DiffModel {
	return &DiffModel{studio: studio}
}

// Init initializes the diff view
func (m *DiffModel) Init() tea.Cmd {
	return nil
}

// SetNodes sets the pair of nodes to compare and rebuilds the content
func (m *DiffModel) SetNodes(aID, bID string) {
	m.aID = aID
	m.bID = bID
	m.errText = ""
	m.viewport.SetContent(m.renderDiff())
	m.viewport.GotoTop()
}

// SetSize updates the view dimensions
func (m *DiffModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := height - 6
	if vpHeight < 4 {
		vpHeight = 4
	}
	if !m.ready {
		m.viewport = viewport.New(width-4, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width - 4
		m.viewport.Height = vpHeight
	}
	m.viewport.SetContent(m.renderDiff())
}

// Update handles messages for the diff view
func (m *DiffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "d":
			return m, func() tea.Msg { return SwitchToFeedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *DiffModel) renderDiff() string {
	if m.aID == "" || m.bID == "" {
		return styles.Subtitle.Render("No nodes selected.")
	}

	result, err := m.studio.Graph.CompareNodes(m.aID, m.bID)
	if err != nil {
		m.errText = err.Error()
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "similarity: %.2f\n\n", result.Similarity)
	if len(result.Changes) == 0 {
		sb.WriteString(styles.Subtitle.Render("snapshots are identical"))
		return sb.String()
	}

	for _, ch := range result.Changes {
		sb.WriteString(renderChange(ch))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderChange(ch domain.ChangeDetail) string {
	var color lipgloss.Color
	switch ch.Type {
	case domain.ChangeLayerAdded:
		color = styles.Secondary
	case domain.ChangeLayerRemoved:
		color = styles.Error
	default:
		color = styles.Warning
	}
	head := lipgloss.NewStyle().Foreground(color).Render(string(ch.Type))

	line := fmt.Sprintf("%s  %s", head, ch.Path)
	if ch.Type == domain.ChangeLayerModified || ch.Type == domain.ChangeCanvasResized || ch.Type == domain.ChangeMetadataChanged {
		line += styles.CardMeta.Render(fmt.Sprintf("  %v → %v", ch.Before, ch.After))
	}
	return line
}

// View renders the diff view
func (m *DiffModel) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("Diff %s → %s", m.aID, m.bID)))
	sb.WriteString("\n")

	if m.errText != "" {
		sb.WriteString(styles.ErrorText.Render(m.errText))
	} else if m.ready {
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n" + styles.StatusBar.Render("↑/↓ scroll · esc back"))
	return styles.App.Render(sb.String())
}
