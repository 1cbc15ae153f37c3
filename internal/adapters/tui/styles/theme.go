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

	// Base styles
	App = lipgloss.NewStyle().
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Stage list
	StageDone = lipgloss.NewStyle().
			Foreground(Secondary)

	StageActive = lipgloss.NewStyle().
			Bold(true)

	StagePending = lipgloss.NewStyle().
			Foreground(Muted)

	// Path shown under the title
	FilePath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Label in label: value lines
	InputLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// History table
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			PaddingRight(2)

	TableCell = lipgloss.NewStyle().
			PaddingRight(2)
)

// OutcomeStyle returns the style for a session outcome label
func OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "updated":
		return Success
	case "cancelled":
		return WarningMsg
	default:
		return ErrorMsg
	}
}
