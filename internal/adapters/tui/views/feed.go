package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"varia/internal/adapters/tui/styles"
	"varia/internal/application"
	"varia/internal/domain"
	"varia/internal/navigation"
	"varia/internal/ports"
)

// cellPx converts terminal cell coordinates into the pixel space the
// navigation physics is tuned for.
const cellPx = 16

// wheelNotch is the wheel delta fed into the controller per scroll event.
const wheelNotch = 8

// FeedKeyMap defines key bindings for the feed view
type FeedKeyMap struct {
	Older    key.Binding
	Newer    key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Generate key.Binding
	Yank     key.Binding
	Branches key.Binding
	Diff     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var FeedKeys = FeedKeyMap{
	Older: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll back"),
	),
	Newer: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll forward"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "redo"),
	),
	Generate: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "ai variation"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank snapshot"),
	),
	Branches: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "branches"),
	),
	Diff: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "diff vs parent"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

// suggestionMsg carries the assistant's reply back to the update loop. The
// graph mutation happens there, never on the worker goroutine: the store is
// single-threaded by contract.
type suggestionMsg struct {
	parentID   string
	suggestion *ports.VariationSuggestion
	err        error
}

// FeedModel is the scrollable variation feed driven by the navigation
// state machine.
type FeedModel struct {
	studio     *application.Studio
	assistant  ports.DesignAssistant
	controller *navigation.Controller

	events  []domain.Event
	started time.Time
	ticking bool

	prompting  bool
	generating bool
	input      textinput.Model

	width      int
	height     int
	message    string
	messageErr bool
}

// NewFeedModel creates a new feed view
func NewFeedModel(studio *application.Studio, assistant ports.DesignAssistant) *FeedModel {
	input := textinput.New()
	input.Placeholder = "describe the variation to generate"
	input.CharLimit = 200

	m := &FeedModel{
		studio:    studio,
		assistant: assistant,
		started:   time.Now(),
		input:     input,
	}
	m.controller = navigation.NewController(studio.Graph, navigation.DefaultConfig())
	m.controller.Subscribe(func(ev domain.Event) {
		m.events = append(m.events, ev)
	})
	studio.Graph.Subscribe(func(ev domain.Event) {
		m.events = append(m.events, ev)
	})
	return m
}

// Init initializes the feed
func (m *FeedModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (m *FeedModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetMessage shows a status or error line
func (m *FeedModel) SetMessage(text string, isErr bool) {
	m.message = text
	m.messageErr = isErr
}

func (m *FeedModel) nowMs() float64 {
	return float64(time.Since(m.started).Microseconds()) / 1000
}

func tickCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ensureTicking starts the frame loop when an animation begins.
func (m *FeedModel) ensureTicking() tea.Cmd {
	if m.ticking || !m.controller.Animating() {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

// Update handles messages for the feed
func (m *FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.controller.Tick(16)
		cmds := []tea.Cmd{m.drainEvents()}
		if m.controller.Animating() {
			cmds = append(cmds, tickCmd())
		} else {
			m.ticking = false
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case suggestionMsg:
		m.generating = false
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("ai: %v", msg.err), true)
			return m, nil
		}
		// Attach under the request-time parent even if the user has
		// navigated elsewhere meanwhile.
		node, err := m.studio.Graph.AddNode(msg.suggestion.Snapshot, msg.parentID, domain.NodeMetadata{
			Source:      domain.SourceAI,
			Description: msg.suggestion.Description,
			Confidence:  msg.suggestion.Confidence,
			AIPrompt:    msg.suggestion.Prompt,
		})
		if err != nil {
			m.SetMessage(fmt.Sprintf("ai commit failed: %v", err), true)
			return m, nil
		}
		m.SetMessage(fmt.Sprintf("ai variation %s: %s", node.ID, node.Metadata.Description), false)
		return m, m.drainEvents()

	case tea.KeyMsg:
		if m.prompting {
			return m, m.handlePromptKey(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *FeedModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x := float64(msg.X) * cellPx
	y := float64(msg.Y) * cellPx

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.controller.Wheel(0, -wheelNotch, m.nowMs())
	case msg.Button == tea.MouseButtonWheelDown:
		m.controller.Wheel(0, wheelNotch, m.nowMs())
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.controller.StartGesture(x, y, m.nowMs())
	case msg.Action == tea.MouseActionMotion:
		m.controller.MoveGesture(x, y, m.nowMs())
	case msg.Action == tea.MouseActionRelease:
		m.controller.EndGesture(x, y, m.nowMs())
	default:
		return nil
	}
	return tea.Batch(m.drainEvents(), m.ensureTicking())
}

func (m *FeedModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, FeedKeys.Quit):
		return tea.Quit

	case key.Matches(msg, FeedKeys.Older):
		m.controller.Wheel(0, -wheelNotch, m.nowMs())
		return tea.Batch(m.drainEvents(), m.ensureTicking())

	case key.Matches(msg, FeedKeys.Newer):
		m.controller.Wheel(0, wheelNotch, m.nowMs())
		return tea.Batch(m.drainEvents(), m.ensureTicking())

	case key.Matches(msg, FeedKeys.Undo):
		res := m.studio.Graph.Undo()
		if !res.Success {
			m.SetMessage(res.Reason, false)
		}
		return m.drainEvents()

	case key.Matches(msg, FeedKeys.Redo):
		res := m.studio.Graph.Redo()
		if !res.Success {
			m.SetMessage(res.Reason, false)
		}
		return m.drainEvents()

	case key.Matches(msg, FeedKeys.Generate):
		if m.assistant == nil || !m.assistant.IsAvailable() {
			m.SetMessage("claude CLI not available", true)
			return nil
		}
		m.prompting = true
		m.input.SetValue("")
		return m.input.Focus()

	case key.Matches(msg, FeedKeys.Yank):
		current := m.studio.Graph.CurrentNode()
		if current == nil {
			return nil
		}
		data, err := current.Snapshot.JSON()
		if err == nil {
			err = clipboard.WriteAll(string(data))
		}
		if err != nil {
			m.SetMessage(fmt.Sprintf("yank failed: %v", err), true)
		} else {
			m.SetMessage(fmt.Sprintf("snapshot %s copied", current.ID), false)
		}
		return nil

	case key.Matches(msg, FeedKeys.Branches):
		return func() tea.Msg { return SwitchToBranchesMsg{} }

	case key.Matches(msg, FeedKeys.Diff):
		current := m.studio.Graph.CurrentNode()
		if current == nil || current.ParentID == "" {
			m.SetMessage("nothing to diff against", false)
			return nil
		}
		return func() tea.Msg {
			return SwitchToDiffMsg{AID: current.ParentID, BID: current.ID}
		}

	case key.Matches(msg, FeedKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

func (m *FeedModel) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.input.Blur()
		return nil
	case "enter":
		instruction := strings.TrimSpace(m.input.Value())
		m.prompting = false
		m.input.Blur()
		if instruction == "" {
			return nil
		}
		return m.generateCmd(instruction)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// generateCmd runs the assistant off the update loop and reports back via
// suggestionMsg. Only the slow network/CLI call happens on the worker; the
// AddNode runs in Update.
func (m *FeedModel) generateCmd(instruction string) tea.Cmd {
	current := m.studio.Graph.CurrentNode()
	if current == nil {
		m.SetMessage("history is not initialized", true)
		return nil
	}
	if m.generating {
		m.SetMessage("already generating", false)
		return nil
	}
	m.generating = true
	m.SetMessage("generating variation...", false)

	parentID := current.ID
	snapshot := current.Snapshot
	assistant := m.assistant
	return func() tea.Msg {
		suggestion, err := assistant.SuggestVariation(snapshot, instruction)
		return suggestionMsg{parentID: parentID, suggestion: suggestion, err: err}
	}
}

// drainEvents reacts to events collected since the last message: persisting
// after navigation, surfacing boundaries, and generating on exhaustion.
func (m *FeedModel) drainEvents() tea.Cmd {
	events := m.events
	m.events = nil

	var cmds []tea.Cmd
	for _, ev := range events {
		switch ev.Type {
		case domain.EventVariationChange:
			if err := m.studio.Save(); err != nil {
				m.SetMessage(fmt.Sprintf("save failed: %v", err), true)
			}
		case domain.EventBoundaryReached:
			m.SetMessage("start of history", false)
		case domain.EventExhausted:
			// Past the newest variation: hand the feed to the AI.
			if m.assistant != nil && m.assistant.IsAvailable() && !m.generating {
				cmds = append(cmds, m.generateCmd("Continue evolving this design in a natural next step"))
			} else {
				m.SetMessage("end of history", false)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// View renders the feed
func (m *FeedModel) View() string {
	var sb strings.Builder

	branch := "-"
	if b := m.studio.Graph.CurrentBranch(); b != nil {
		branch = b.Name
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("varia studio — %s @ %s", m.studio.Name, branch)))
	sb.WriteString("\n")

	timeline := m.studio.Graph.Timeline()
	current := m.studio.Graph.CurrentNode()
	if len(timeline) == 0 || current == nil {
		sb.WriteString(styles.Subtitle.Render("No history yet. Run `varia-cli init` to start."))
		return styles.App.Render(sb.String())
	}

	index := 0
	for i, n := range timeline {
		if n.ID == current.ID {
			index = i
			break
		}
	}

	// Window of cards around the current node, sized to the terminal.
	radius := 2
	if m.height > 30 {
		radius = 3
	}
	lo, hi := index-radius, index+radius
	if lo < 0 {
		lo = 0
	}
	if hi > len(timeline)-1 {
		hi = len(timeline) - 1
	}

	if lo > 0 {
		sb.WriteString(styles.CardMeta.Render(fmt.Sprintf("  ↑ %d earlier", lo)) + "\n")
	}
	for i := lo; i <= hi; i++ {
		sb.WriteString(m.renderCard(timeline[i], i == index))
		sb.WriteString("\n")
	}
	if hi < len(timeline)-1 {
		sb.WriteString(styles.CardMeta.Render(fmt.Sprintf("  ↓ %d later", len(timeline)-1-hi)) + "\n")
	}

	if m.prompting {
		sb.WriteString("\n" + m.input.View() + "\n")
	}

	if m.message != "" {
		style := styles.StatusBar
		if m.messageErr {
			style = styles.ErrorText
		}
		sb.WriteString("\n" + style.Render(m.message) + "\n")
	}

	state := m.controller.State()
	status := fmt.Sprintf("%d/%d  %s", index+1, len(timeline), state.Phase)
	if m.generating {
		status += "  ai…"
	}
	sb.WriteString("\n" + styles.StatusBar.Render(status))
	return styles.App.Render(sb.String())
}

func (m *FeedModel) renderCard(n *domain.HistoryNode, isCurrent bool) string {
	badge := lipgloss.NewStyle().
		Foreground(styles.SourceColor(string(n.Metadata.Source))).
		Render(string(n.Metadata.Source))

	desc := n.Metadata.Description
	if desc == "" {
		desc = snapshotSummary(n.Snapshot)
	}

	width := m.width - 8
	if width < 24 {
		width = 24
	}
	body := fmt.Sprintf("%s  %s\n%s",
		styles.CardID.Render(n.ID), badge,
		styles.CardMeta.Render(truncate(desc, width)))

	if isCurrent {
		return styles.CardCurrent.Width(width).Render(body)
	}
	return styles.Card.Width(width).Render(body)
}
