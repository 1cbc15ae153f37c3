package notify

import (
	"fmt"
	"io"

	"clipedit/internal/adapters/tui/styles"
	"clipedit/internal/ports"
)

// Console implements ports.Notifier by printing styled lines
type Console struct {
	out io.Writer
	err io.Writer
}

// Ensure Console implements Notifier
var _ ports.Notifier = (*Console)(nil)

// NewConsole prints successes to out and failures to errOut
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

func (c *Console) Success(message string) {
	fmt.Fprintln(c.out, styles.Success.Render("✓ "+message))
}

func (c *Console) Failure(message string) {
	fmt.Fprintln(c.err, styles.ErrorMsg.Render("✗ "+message))
}
