package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"clipedit/internal/adapters/tui/styles"
	"clipedit/internal/domain"
)

// ProgressKeyMap defines key bindings for the progress view
type ProgressKeyMap struct {
	Cancel key.Binding
}

var ProgressKeys = ProgressKeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel edit"),
	),
}

// stages shown in the list, in workflow order
var stages = []domain.Stage{
	domain.StageReadingClipboard,
	domain.StageLocatingEditor,
	domain.StageLaunchingTerminal,
	domain.StageWaitingForEdit,
	domain.StageWritingClipboard,
}

// ProgressModel shows where the edit session is and how it ended
type ProgressModel struct {
	ViewState
	spinner    spinner.Model
	current    domain.Stage
	started    bool
	cancelling bool
	done       bool
}

// NewProgressModel creates a new progress view model
func NewProgressModel() *ProgressModel {
	return &ProgressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Spinner),
		),
	}
}

// Init starts the spinner
func (m *ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && !m.done {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// SetStage marks s as the active stage
func (m *ProgressModel) SetStage(s domain.Stage) {
	m.current = s
	m.started = true
}

// Stage returns the active stage
func (m *ProgressModel) Stage() domain.Stage {
	return m.current
}

// SetCancelling shows that cancellation was requested
func (m *ProgressModel) SetCancelling() {
	m.cancelling = true
}

// Cancelling reports whether cancellation was requested
func (m *ProgressModel) Cancelling() bool {
	return m.cancelling
}

// Finish shows the final message and stops the spinner
func (m *ProgressModel) Finish(message string, isErr bool) {
	m.done = true
	m.SetMessage(message, isErr)
}

// View renders the stage list
func (m *ProgressModel) View() string {
	v := NewViewBuilder().Title("clipedit")

	for _, s := range stages {
		v.Line(m.stageLine(s))
	}
	v.BlankLine()

	if m.done {
		v.Message(m.Message, m.MessageErr)
		return v.String()
	}

	if m.cancelling {
		v.Muted("Cancelling, cleaning up…")
		return v.String()
	}
	return v.Help(ProgressKeys.Cancel).String()
}

func (m *ProgressModel) stageLine(s domain.Stage) string {
	switch {
	case !m.started || s > m.current:
		return styles.StagePending.Render("  · " + s.Description())
	case s < m.current || m.current == domain.StageDone:
		return styles.StageDone.Render("  ✓ " + s.Description())
	case m.done:
		// the stage the session failed in
		return styles.ErrorMsg.Render("  ✗ " + s.Description())
	default:
		return m.spinner.View() + " " + styles.StageActive.Render(s.Description())
	}
}
