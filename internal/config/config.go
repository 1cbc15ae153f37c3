package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultEditorCommand is looked up on PATH before the fallback list
	DefaultEditorCommand = "nvim"

	// DefaultInstallHint is shown verbatim when no editor is found
	DefaultInstallHint = "Neovim not found. Please install it via 'brew install neovim' or visit https://neovim.io"

	// DefaultITermBundle is checked to decide whether iTerm can be scripted
	DefaultITermBundle = "/Applications/iTerm.app"

	DefaultPollInterval = 250 * time.Millisecond
	DefaultSettleDelay  = 250 * time.Millisecond
)

// Terminal applications
const (
	TerminalAuto     = "auto"
	TerminalITerm    = "iterm"
	TerminalTerminal = "terminal"
)

// Journal database drivers, by database/sql name
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// Change detection strategies
const (
	StrategyPoll     = "poll"
	StrategyFsnotify = "fsnotify"
)

// DefaultFallbackPaths are the common packaged-install locations of nvim
var DefaultFallbackPaths = []string{
	"/opt/homebrew/bin/nvim",
	"/usr/local/bin/nvim",
	"/usr/bin/nvim",
	"/opt/local/bin/nvim",
	"/usr/local/opt/neovim/bin/nvim",
}

// DefaultCompatFlags make nvim skip the parts of the user config that
// expect a full interactive environment
var DefaultCompatFlags = []string{"--cmd", "let g:vscode = v:true"}

// Duration is a time.Duration that reads and writes as "250ms" in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the clipedit configuration file
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Terminal TerminalConfig `toml:"terminal"`
	Watch    WatchConfig    `toml:"watch"`
	Journal  JournalConfig  `toml:"journal"`
	Log      LogConfig      `toml:"log"`
}

// EditorConfig controls editor discovery
type EditorConfig struct {
	Command       string   `toml:"command"`
	FallbackPaths []string `toml:"fallback_paths"`
	InstallHint   string   `toml:"install_hint"`
	CompatFlags   []string `toml:"compat_flags"`
}

// TerminalConfig controls which terminal is scripted and how
type TerminalConfig struct {
	// App is "auto", "iterm" or "terminal"
	App         string `toml:"app"`
	ITermBundle string `toml:"iterm_bundle"`
	Profile     string `toml:"profile"`
	LoginShell  bool   `toml:"login_shell"`
	CompatMode  bool   `toml:"compat_mode"`
}

// WatchConfig controls edit-completion detection
type WatchConfig struct {
	// Strategy is "poll" or "fsnotify"
	Strategy    string   `toml:"strategy"`
	Interval    Duration `toml:"interval"`
	SettleDelay Duration `toml:"settle_delay"`

	// Timeout bounds the wait; zero waits forever
	Timeout Duration `toml:"timeout"`
}

// JournalConfig controls the session history database
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	// Driver is "sqlite" (pure Go, default) or "sqlite3" (cgo)
	Driver string `toml:"driver"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Dir    string `toml:"dir"`
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Command:       DefaultEditorCommand,
			FallbackPaths: append([]string(nil), DefaultFallbackPaths...),
			InstallHint:   DefaultInstallHint,
			CompatFlags:   append([]string(nil), DefaultCompatFlags...),
		},
		Terminal: TerminalConfig{
			App:         TerminalAuto,
			ITermBundle: DefaultITermBundle,
			Profile:     "Default",
			LoginShell:  false,
			CompatMode:  true,
		},
		Watch: WatchConfig{
			Strategy:    StrategyPoll,
			Interval:    Duration{DefaultPollInterval},
			SettleDelay: Duration{DefaultSettleDelay},
		},
		Journal: JournalConfig{
			Enabled: true,
			Driver:  DriverModernc,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// StateDir returns ~/.local/state/clipedit, home of the journal and logs
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "clipedit"), nil
}

// Path returns the config file location from CLIPEDIT_CONFIG,
// falling back to ~/.config/clipedit/config.toml.
func Path() (string, error) {
	if env := os.Getenv("CLIPEDIT_CONFIG"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "clipedit", "config.toml"), nil
}

// Load reads the config at path over the defaults. A missing file is not an
// error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config.toml parse error: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if env := os.Getenv("CLIPEDIT_EDITOR"); env != "" {
		cfg.Editor.Command = env
	}
	if env := os.Getenv("CLIPEDIT_TERMINAL"); env != "" {
		cfg.Terminal.App = env
	}
}

// Validate rejects settings the bridge cannot run with
func (c *Config) Validate() error {
	if c.Editor.Command == "" && len(c.Editor.FallbackPaths) == 0 {
		return fmt.Errorf("editor: command or fallback_paths is required")
	}

	switch c.Terminal.App {
	case TerminalAuto, TerminalITerm, TerminalTerminal:
	default:
		return fmt.Errorf("terminal.app: unknown terminal %q (expected auto, iterm or terminal)", c.Terminal.App)
	}

	switch c.Watch.Strategy {
	case StrategyPoll, StrategyFsnotify:
	default:
		return fmt.Errorf("watch.strategy: unknown strategy %q (expected poll or fsnotify)", c.Watch.Strategy)
	}

	switch c.Journal.Driver {
	case DriverModernc, DriverCgo:
	default:
		return fmt.Errorf("journal.driver: unknown driver %q (expected sqlite or sqlite3)", c.Journal.Driver)
	}

	if c.Watch.Interval.Duration <= 0 {
		return fmt.Errorf("watch.interval: must be positive, got %s", c.Watch.Interval)
	}
	if c.Watch.SettleDelay.Duration < 0 {
		return fmt.Errorf("watch.settle_delay: must not be negative, got %s", c.Watch.SettleDelay)
	}
	if c.Watch.Timeout.Duration < 0 {
		return fmt.Errorf("watch.timeout: must not be negative, got %s", c.Watch.Timeout)
	}
	return nil
}

// JournalPath resolves the session database location
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return expandHome(c.Journal.Path)
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// LogDir resolves the log directory. Empty means logging is off unless debug.
func (c *Config) LogDir(debug bool) (string, error) {
	if c.Log.Dir != "" {
		return expandHome(c.Log.Dir)
	}
	if !debug {
		return "", nil
	}
	return StateDir()
}

// Encode renders the config as TOML
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# clipedit configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the config to path via a temp file and rename
func Save(path string, c *Config) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
