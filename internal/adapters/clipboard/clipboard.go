package clipboard

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"

	"clipedit/internal/application"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompClipboard)

// System implements ports.Clipboard on the OS clipboard (pbcopy/pbpaste,
// xclip, xsel, wl-clipboard or the Windows API, whichever atotto finds)
type System struct{}

// Ensure System implements Clipboard
var _ ports.Clipboard = (*System)(nil)

// NewSystem creates the OS clipboard adapter
func NewSystem() *System {
	return &System{}
}

// Read returns the clipboard text
func (s *System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("%w: no clipboard utility installed", application.ErrClipboard)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		log.Warn("clipboard_read_failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", application.ErrClipboard, err)
	}
	return text, nil
}

// Write replaces the clipboard contents
func (s *System) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility installed", application.ErrClipboard)
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.Warn("clipboard_write_failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", application.ErrClipboard, err)
	}
	return nil
}
