package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipedit/internal/config"
	"clipedit/internal/logging"
	"clipedit/internal/wiring"
)

var (
	configPath string
	debug      bool

	cfg  *config.Config
	deps *wiring.Deps
)

// reportedError has already been shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "clipedit-cli",
	Short: "Edit clipboard text in a terminal editor",
	Long: `clipedit-cli copies the clipboard into a temporary file, opens it in
Neovim inside a new terminal window, waits until you save a change and
copies the result back to the clipboard.

It also shows which editor and launch script would be used, the history
of past sessions, and manages the configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return wiring.InitLogging(cfg, debug)
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if deps != nil {
		deps.Close()
	}
	logging.Shutdown()

	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	defaultPath, _ := config.Path()
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to config.toml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to ~/.local/state/clipedit")
}

// GetDeps returns the adapters, building them on first use so flag
// overrides applied to the config take effect
func GetDeps() *wiring.Deps {
	if deps == nil {
		deps = wiring.Build(cfg)
	}
	return deps
}
