package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"varia/internal/adapters/tui/styles"
	"varia/internal/application"
	"varia/internal/domain"
)

// BranchesKeyMap defines key bindings for the branches view
type BranchesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	New    key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var BranchesKeys = BranchesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Switch: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "switch"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new branch at current node"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BranchesModel lists branches and lets the user switch or create one.
type BranchesModel struct {
	studio *application.Studio

	branches []*domain.Branch
	cursor   int

	naming bool
	input  textinput.Model

	width   int
	height  int
	message string
}

// NewBranchesModel creates a new branches view
func NewBranchesModel(studio *application.Studio) *BranchesModel {
	input := textinput.New()
	input.Placeholder = "branch name"
	input.CharLimit = 60

	return &BranchesModel{
		studio: studio,
		input:  input,
	}
}

// Init initializes the branches view
func (m *BranchesModel) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh reloads the branch list from the graph
func (m *BranchesModel) Refresh() {
	m.branches = m.studio.Graph.Branches()
	if m.cursor >= len(m.branches) {
		m.cursor = len(m.branches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetSize updates the view dimensions
func (m *BranchesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the branches view
func (m *BranchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.naming {
		return m, m.handleNamingKey(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, BranchesKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, BranchesKeys.Back):
		return m, func() tea.Msg { return SwitchToFeedMsg{} }

	case key.Matches(keyMsg, BranchesKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, BranchesKeys.Down):
		if m.cursor < len(m.branches)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, BranchesKeys.Switch):
		if len(m.branches) == 0 {
			return m, nil
		}
		res := m.studio.Graph.SwitchBranch(m.branches[m.cursor].ID)
		if !res.Success {
			m.message = res.Reason
			return m, nil
		}
		if err := m.studio.Save(); err != nil {
			m.message = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		return m, func() tea.Msg { return SwitchToFeedMsg{} }

	case key.Matches(keyMsg, BranchesKeys.New):
		if !m.studio.Graph.Initialized() {
			m.message = "history is not initialized"
			return m, nil
		}
		m.naming = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}

	return m, nil
}

func (m *BranchesModel) handleNamingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.naming = false
		m.input.Blur()
		return nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		m.naming = false
		m.input.Blur()
		if name == "" {
			return nil
		}
		current := m.studio.Graph.CurrentNode()
		if _, err := m.studio.Graph.CreateBranch(name, current.ID, domain.BranchMetadata{}); err != nil {
			m.message = err.Error()
			return nil
		}
		if err := m.studio.Save(); err != nil {
			m.message = fmt.Sprintf("save failed: %v", err)
			return nil
		}
		m.message = fmt.Sprintf("branch %q created at %s", name, current.ID)
		m.Refresh()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the branches view
func (m *BranchesModel) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Branches"))
	sb.WriteString("\n")

	if len(m.branches) == 0 {
		sb.WriteString(styles.Subtitle.Render("No branches yet."))
		return styles.App.Render(sb.String())
	}

	for i, b := range m.branches {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		name := styles.BranchName.Render(b.Name)
		if b.IsActive {
			name = styles.BranchActive.Render(" " + b.Name + " ")
		}
		meta := styles.CardMeta.Render(fmt.Sprintf("base=%s tip=%s nodes=%d", b.BaseNodeID, b.Tip(), len(b.Nodes)))
		fmt.Fprintf(&sb, "%s%s  %s\n", cursor, name, meta)
	}

	if m.naming {
		sb.WriteString("\n" + m.input.View() + "\n")
	}
	if m.message != "" {
		sb.WriteString("\n" + styles.StatusBar.Render(m.message) + "\n")
	}

	sb.WriteString("\n" + styles.StatusBar.Render("enter switch · n new · esc back"))
	return styles.App.Render(sb.String())
}
