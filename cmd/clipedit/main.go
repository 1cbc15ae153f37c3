package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"clipedit/internal/adapters/notify"
	"clipedit/internal/adapters/tui"
	"clipedit/internal/application"
	"clipedit/internal/application/commands"
	"clipedit/internal/config"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
	"clipedit/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaultPath, _ := config.Path()
	configFlag := flag.String("config", defaultPath, "path to config.toml")
	debugFlag := flag.Bool("debug", false, "write debug logs to ~/.local/state/clipedit")
	headlessFlag := flag.Bool("headless", false, "report with desktop notifications instead of the terminal view")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clipedit: %v\n", err)
		return 1
	}
	if err := wiring.InitLogging(cfg, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "clipedit: %v\n", err)
		return 1
	}
	defer logging.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Watch.Timeout.Duration)
		defer cancel()
	}

	deps := wiring.Build(cfg)
	defer deps.Close()

	runSession := func(ctx context.Context, onStage func(domain.Stage)) (*commands.EditClipboardResult, error) {
		cmd := deps.EditCommand(deps.LaunchOptions())
		cmd.OnStage = onStage
		return cmd.Execute(ctx)
	}

	if *headlessFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		return headless(ctx, runSession, notify.NewDesktop(deps.Runner, "clipedit"))
	}
	return interactive(ctx, runSession)
}

func headless(ctx context.Context, runSession tui.RunFunc, notifier ports.Notifier) int {
	result, err := runSession(ctx, nil)
	if err != nil {
		logging.Logger().Error("edit_failed", slog.String("error", err.Error()))
		notifier.Failure(application.UserMessage(err))
		return 1
	}
	notifier.Success(result.Message)
	return 0
}

func interactive(ctx context.Context, runSession tui.RunFunc) int {
	app := tui.NewApp(ctx, runSession)
	// signals cancel ctx, which ends the session and then the program
	p := tea.NewProgram(app, tea.WithoutSignalHandler())

	_, runErr := p.Run()
	app.Stop()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	if _, err := app.Result(); err != nil {
		logging.Logger().Error("edit_failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
