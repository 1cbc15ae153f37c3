package process

import (
	"context"
	"os/exec"

	"clipedit/internal/ports"
)

// Runner implements ports.CommandRunner with os/exec
type Runner struct{}

// Ensure Runner implements CommandRunner
var _ ports.CommandRunner = (*Runner)(nil)

// NewRunner creates a new command runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name with args and returns stdout and stderr combined.
// The program is started directly, never through a shell.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}
