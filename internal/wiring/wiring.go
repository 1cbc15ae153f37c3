// Package wiring builds the adapters every clipedit binary shares from a
// loaded configuration.
package wiring

import (
	"log/slog"
	"os"

	"clipedit/internal/adapters/clipboard"
	"clipedit/internal/adapters/editor"
	"clipedit/internal/adapters/process"
	"clipedit/internal/adapters/sqlite"
	"clipedit/internal/adapters/terminal"
	"clipedit/internal/adapters/watch"
	"clipedit/internal/application/commands"
	"clipedit/internal/config"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompCLI)

// Deps are the adapters for one invocation
type Deps struct {
	Config    *config.Config
	Runner    ports.CommandRunner
	Clipboard ports.Clipboard
	Locator   *editor.Locator
	Launcher  *terminal.Launcher
	Waiter    ports.ChangeWaiter

	// Journal is nil when disabled or when the database cannot be opened
	Journal ports.SessionJournal
}

// Build creates the adapters described by cfg. The terminal backend is
// detected here, once.
func Build(cfg *config.Config) *Deps {
	runner := process.NewRunner()
	backend := terminal.Detect(cfg.Terminal, os.Stat)

	d := &Deps{
		Config:    cfg,
		Runner:    runner,
		Clipboard: clipboard.NewSystem(),
		Locator:   editor.NewLocator(cfg.Editor),
		Launcher:  terminal.NewLauncher(backend, runner, cfg.Editor.CompatFlags),
		Waiter:    watch.New(cfg.Watch),
	}

	if cfg.Journal.Enabled {
		d.Journal = OpenJournal(cfg)
	}

	log.Debug("wired",
		slog.String("backend", backend.Name()),
		slog.String("watch", cfg.Watch.Strategy),
		slog.Bool("journal", d.Journal != nil))
	return d
}

// OpenJournal opens the session database. History is optional, so a failure
// is logged and yields nil.
func OpenJournal(cfg *config.Config) ports.SessionJournal {
	path, err := cfg.JournalPath()
	if err != nil {
		log.Warn("journal_path_failed", slog.String("error", err.Error()))
		return nil
	}
	j := sqlite.NewJournal(sqlite.WithDriver(cfg.Journal.Driver))
	if err := j.Open(path); err != nil {
		log.Warn("journal_open_failed",
			slog.String("path", path),
			slog.String("driver", cfg.Journal.Driver),
			slog.String("error", err.Error()))
		return nil
	}
	return j
}

// LaunchOptions returns the configured launch options
func (d *Deps) LaunchOptions() domain.LaunchOptions {
	return domain.LaunchOptions{
		UseLoginShell: d.Config.Terminal.LoginShell,
		PassExtraFlag: d.Config.Terminal.CompatMode,
	}
}

// EditCommand builds a clipboard round trip with these adapters
func (d *Deps) EditCommand(opts domain.LaunchOptions) *commands.EditClipboardCommand {
	cmd := commands.NewEditClipboardCommand(d.Clipboard, d.Locator, d.Launcher, d.Waiter, opts)
	cmd.Journal = d.Journal
	return cmd
}

// Close releases the journal
func (d *Deps) Close() error {
	if d.Journal != nil {
		return d.Journal.Close()
	}
	return nil
}

// InitLogging configures the global logger from cfg
func InitLogging(cfg *config.Config, debug bool) error {
	dir, err := cfg.LogDir(debug)
	if err != nil {
		return err
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	logging.Init(logging.Config{
		LogDir: dir,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Debug:  debug,
	})
	return nil
}
