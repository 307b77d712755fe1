package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Source colors
	SourceUser   = lipgloss.Color("#60A5FA") // Blue
	SourceAI     = lipgloss.Color("#8B5CF6") // Violet
	SourceImport = lipgloss.Color("#F97316") // Orange
	SourceFork   = lipgloss.Color("#EC4899") // Pink

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	StatusBar = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	// Variation cards in the feed
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	CardCurrent = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	CardID = lipgloss.NewStyle().
		Bold(true)

	CardMeta = lipgloss.NewStyle().
			Foreground(Muted)

	// Branch list
	BranchActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	BranchName = lipgloss.NewStyle().
			Foreground(Secondary)
)

// SourceColor maps a variation source to its display color.
func SourceColor(source string) lipgloss.Color {
	switch source {
	case "ai":
		return SourceAI
	case "import":
		return SourceImport
	case "fork":
		return SourceFork
	default:
		return SourceUser
	}
}
