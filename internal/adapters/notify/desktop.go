package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clipedit/internal/adapters/terminal"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompNotify)

// Desktop implements ports.Notifier with macOS notification banners, the
// equivalent of a launcher HUD when clipedit runs without a terminal
type Desktop struct {
	runner ports.CommandRunner
	title  string
}

// Ensure Desktop implements Notifier
var _ ports.Notifier = (*Desktop)(nil)

// NewDesktop creates a notifier that posts banners titled title
func NewDesktop(runner ports.CommandRunner, title string) *Desktop {
	return &Desktop{runner: runner, title: title}
}

func (d *Desktop) Success(message string) {
	d.post(message, "")
}

func (d *Desktop) Failure(message string) {
	d.post(message, "Basso")
}

// Script returns the AppleScript that shows message
func (d *Desktop) Script(message, sound string) string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		terminal.AppleScriptString(message), terminal.AppleScriptString(d.title))
	if sound != "" {
		script += fmt.Sprintf(` sound name "%s"`, terminal.AppleScriptString(sound))
	}
	return script
}

func (d *Desktop) post(message, sound string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// a lost banner must never fail the workflow
	if out, err := d.runner.Run(ctx, terminal.ScriptHost, "-e", d.Script(message, sound)); err != nil {
		log.Warn("notification_failed", slog.String("error", err.Error()), slog.String("output", string(out)))
	}
}
