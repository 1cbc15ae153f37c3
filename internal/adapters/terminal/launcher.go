package terminal

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"clipedit/internal/application"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompTerminal)

const (
	// ScriptHost runs the generated AppleScript
	ScriptHost = "osascript"

	// DefaultShell runs the editor when the login shell is not requested
	DefaultShell = "/bin/sh"

	// DefaultLoginShell is used when $SHELL is unset
	DefaultLoginShell = "/bin/zsh"
)

// Launcher implements ports.TerminalLauncher
type Launcher struct {
	backend     Backend
	runner      ports.CommandRunner
	compatFlags []string
	getenv      func(string) string
}

// Ensure Launcher implements TerminalLauncher
var _ ports.TerminalLauncher = (*Launcher)(nil)

// NewLauncher creates a launcher for backend. compatFlags are appended to the
// editor invocation when LaunchOptions.PassExtraFlag is set.
func NewLauncher(backend Backend, runner ports.CommandRunner, compatFlags []string) *Launcher {
	return &Launcher{
		backend:     backend,
		runner:      runner,
		compatFlags: compatFlags,
		getenv:      os.Getenv,
	}
}

// Backend returns the terminal application name
func (l *Launcher) Backend() string {
	return l.backend.Name()
}

// Shell returns the shell that will run the editor
func (l *Launcher) Shell(opts domain.LaunchOptions) string {
	if !opts.UseLoginShell {
		return DefaultShell
	}
	if shell := l.getenv("SHELL"); shell != "" {
		return shell
	}
	return DefaultLoginShell
}

// Script returns the AppleScript Launch would run
func (l *Launcher) Script(editor domain.EditorHandle, file string, opts domain.LaunchOptions) string {
	var flags []string
	if opts.PassExtraFlag {
		flags = l.compatFlags
	}
	return BuildLaunchScript(l.backend, l.Shell(opts), editor.Path, file, flags)
}

// Launch opens the terminal window and returns once the scripting host is
// done, which is as soon as the window exists. Failures are not retried.
func (l *Launcher) Launch(ctx context.Context, editor domain.EditorHandle, file string, opts domain.LaunchOptions) error {
	script := l.Script(editor, file, opts)

	log.Debug("terminal_launch",
		slog.String("backend", l.backend.Name()),
		slog.String("editor", editor.Path),
		slog.String("file", file),
		slog.Bool("login_shell", opts.UseLoginShell),
		slog.Bool("compat", opts.PassExtraFlag),
	)

	out, err := l.runner.Run(ctx, ScriptHost, "-e", script)
	if err != nil {
		launchErr := &application.TerminalLaunchError{
			Backend: l.backend.Name(),
			Output:  strings.TrimSpace(string(out)),
			Err:     err,
		}
		log.Error("terminal_launch_failed", slog.String("backend", l.backend.Name()), slog.String("error", launchErr.Error()))
		return launchErr
	}
	return nil
}
