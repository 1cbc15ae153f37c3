package ports

import (
	"context"

	"clipedit/internal/domain"
)

// TerminalLauncher opens an interactive terminal window running the editor
// against a file. It returns once the window exists, not when editing ends.
type TerminalLauncher interface {
	Launch(ctx context.Context, editor domain.EditorHandle, file string, opts domain.LaunchOptions) error

	// Backend names the terminal application that Launch will script
	Backend() string
}

// ScriptRenderer exposes the terminal-scripting program a launch would run,
// without running it
type ScriptRenderer interface {
	Script(editor domain.EditorHandle, file string, opts domain.LaunchOptions) string
}
