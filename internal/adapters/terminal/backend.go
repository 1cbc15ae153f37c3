package terminal

import (
	"fmt"
	"os"

	"clipedit/internal/config"
)

// Backend is a scriptable terminal application
type Backend interface {
	// Name is the application name used in the tell block
	Name() string

	// Script returns the AppleScript that opens a window running command
	// and brings it to the front. command is an unescaped shell command line.
	Script(command string) string
}

// ITerm scripts iTerm2
type ITerm struct {
	Profile string
}

func (b ITerm) Name() string {
	return "iTerm"
}

func (b ITerm) Script(command string) string {
	profile := b.Profile
	if profile == "" {
		profile = "Default"
	}
	return fmt.Sprintf(`tell application "iTerm"
	create window with profile "%s" command "%s"
	activate
end tell`, AppleScriptString(profile), AppleScriptString(command))
}

// TerminalApp scripts the macOS default Terminal
type TerminalApp struct{}

func (TerminalApp) Name() string {
	return "Terminal"
}

func (TerminalApp) Script(command string) string {
	return fmt.Sprintf(`tell application "Terminal"
	do script "%s"
	activate
end tell`, AppleScriptString(command))
}

// Detect picks the backend once per invocation. In auto mode iTerm is used
// when its application bundle is installed.
func Detect(cfg config.TerminalConfig, stat func(string) (os.FileInfo, error)) Backend {
	if stat == nil {
		stat = os.Stat
	}

	switch cfg.App {
	case config.TerminalITerm:
		return ITerm{Profile: cfg.Profile}
	case config.TerminalTerminal:
		return TerminalApp{}
	}

	bundle := cfg.ITermBundle
	if bundle == "" {
		bundle = config.DefaultITermBundle
	}
	if _, err := stat(bundle); err == nil {
		return ITerm{Profile: cfg.Profile}
	}
	return TerminalApp{}
}
