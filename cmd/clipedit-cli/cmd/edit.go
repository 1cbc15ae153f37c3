package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipedit/internal/adapters/notify"
	"clipedit/internal/adapters/tui/styles"
	"clipedit/internal/application"
	"clipedit/internal/config"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
)

var (
	editLoginShell bool
	editNoCompat   bool
	editVerbose    bool
	editTimeout    time.Duration
	editTerminal   string
	editStrategy   string
	editTempDir    string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the clipboard in a terminal editor",
	Long: `Open the clipboard text in Neovim in a new terminal window and wait.
As soon as the file is saved with different content the edited text is
copied back to the clipboard and the temporary file is removed.

Ctrl+C stops waiting; the clipboard is left unchanged.

Examples:
  clipedit-cli edit
  clipedit-cli edit --login-shell --timeout 10m
  clipedit-cli edit --terminal terminal --strategy fsnotify`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyEditFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if cfg.Watch.Timeout.Duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Watch.Timeout.Duration)
			defer cancel()
		}

		d := GetDeps()
		opts := d.LaunchOptions()
		opts.UseLoginShell = opts.UseLoginShell || editLoginShell
		opts.PassExtraFlag = opts.PassExtraFlag && !editNoCompat

		editCommand := d.EditCommand(opts)
		editCommand.TempDir = editTempDir
		if editVerbose {
			editCommand.OnStage = func(s domain.Stage) {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.MutedText.Render("… "+s.Description()))
			}
		}

		notifier := notify.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
		result, err := editCommand.Execute(ctx)
		if err != nil {
			logging.ForComponent(logging.CompCLI).Error("edit_failed", slog.String("error", err.Error()))
			notifier.Failure(application.UserMessage(err))
			return &reportedError{err: err}
		}

		notifier.Success(result.Message)
		return nil
	},
}

// applyEditFlags copies explicitly set flags over the loaded config
func applyEditFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		c.Watch.Timeout = config.Duration{Duration: editTimeout}
	}
	if flags.Changed("terminal") {
		c.Terminal.App = editTerminal
	}
	if flags.Changed("strategy") {
		c.Watch.Strategy = editStrategy
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editLoginShell, "login-shell", false, "run the editor through $SHELL")
	editCmd.Flags().BoolVar(&editNoCompat, "no-compat", false, "load the full editor config (omit compatibility flags)")
	editCmd.Flags().BoolVarP(&editVerbose, "verbose", "V", false, "print each stage")
	editCmd.Flags().DurationVar(&editTimeout, "timeout", 0, "stop waiting after this long (0 waits forever)")
	editCmd.Flags().StringVar(&editTerminal, "terminal", config.TerminalAuto, "terminal app: auto, iterm or terminal")
	editCmd.Flags().StringVar(&editStrategy, "strategy", config.StrategyPoll, "change detection: poll or fsnotify")
	editCmd.Flags().StringVar(&editTempDir, "temp-dir", "", "directory for the session file (default: system temp dir)")
}
