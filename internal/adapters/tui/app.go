package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"clipedit/internal/adapters/tui/views"
	"clipedit/internal/application"
	"clipedit/internal/application/commands"
	"clipedit/internal/domain"
)

// RunFunc executes one edit session, reporting stages through onStage
type RunFunc func(ctx context.Context, onStage func(domain.Stage)) (*commands.EditClipboardResult, error)

// StageMsg reports that the session entered a new stage
type StageMsg struct {
	Stage domain.Stage
}

// FinishedMsg carries the session's result
type FinishedMsg struct {
	Result *commands.EditClipboardResult
	Err    error
}

// App is the main TUI application model
type App struct {
	run    RunFunc
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg
	done   chan struct{}

	started  bool
	progress *views.ProgressModel

	result *commands.EditClipboardResult
	err    error
}

// NewApp creates a new TUI application. Cancelling ctx or pressing esc
// aborts the wait; the session still cleans up before the app quits.
func NewApp(ctx context.Context, run RunFunc) *App {
	ctx, cancel := context.WithCancel(ctx)
	return &App{
		run:      run,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan tea.Msg, 8),
		done:     make(chan struct{}),
		progress: views.NewProgressModel(),
	}
}

// Init starts the session and the spinner
func (a *App) Init() tea.Cmd {
	a.started = true
	go a.execute()
	return tea.Batch(a.progress.Init(), a.nextEvent())
}

func (a *App) execute() {
	defer close(a.done)
	defer close(a.events)
	a.result, a.err = a.run(a.ctx, func(s domain.Stage) {
		a.events <- StageMsg{Stage: s}
	})
	a.events <- FinishedMsg{Result: a.result, Err: a.err}
}

// nextEvent delivers session events one at a time, keeping their order
func (a *App) nextEvent() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-a.events
		if !ok {
			return nil
		}
		return msg
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.progress.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, views.ProgressKeys.Cancel) && !a.progress.Cancelling() {
			a.progress.SetCancelling()
			a.cancel()
		}
		return a, nil

	case StageMsg:
		a.progress.SetStage(msg.Stage)
		return a, a.nextEvent()

	case FinishedMsg:
		a.cancel()
		if msg.Err != nil {
			a.progress.Finish(application.UserMessage(msg.Err), true)
		} else {
			a.progress.Finish(msg.Result.Message, false)
		}
		return a, tea.Quit
	}

	_, cmd := a.progress.Update(msg)
	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	return a.progress.View()
}

// Stop cancels the session if it is still running and waits for it to
// clean up. The program may exit before the session does.
func (a *App) Stop() {
	a.cancel()
	if a.started {
		<-a.done
	}
}

// Result returns the session outcome. Call it after FinishedMsg or Stop.
func (a *App) Result() (*commands.EditClipboardResult, error) {
	return a.result, a.err
}
