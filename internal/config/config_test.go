package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CLIPEDIT_EDITOR", "")
	t.Setenv("CLIPEDIT_TERMINAL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEditorCommand, cfg.Editor.Command)
	assert.Equal(t, DefaultFallbackPaths, cfg.Editor.FallbackPaths)
	assert.Equal(t, DefaultInstallHint, cfg.Editor.InstallHint)
	assert.Equal(t, TerminalAuto, cfg.Terminal.App)
	assert.True(t, cfg.Terminal.CompatMode)
	assert.False(t, cfg.Terminal.LoginShell)
	assert.Equal(t, DefaultPollInterval, cfg.Watch.Interval.Duration)
	assert.Equal(t, DefaultSettleDelay, cfg.Watch.SettleDelay.Duration)
	assert.Zero(t, cfg.Watch.Timeout.Duration)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("CLIPEDIT_EDITOR", "")
	t.Setenv("CLIPEDIT_TERMINAL", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[editor]
command = "vim"

[terminal]
app = "terminal"
login_shell = true

[watch]
strategy = "fsnotify"
interval = "100ms"
timeout = "10m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vim", cfg.Editor.Command)
	// Unset keys keep their defaults
	assert.Equal(t, DefaultFallbackPaths, cfg.Editor.FallbackPaths)
	assert.Equal(t, TerminalTerminal, cfg.Terminal.App)
	assert.True(t, cfg.Terminal.LoginShell)
	assert.Equal(t, StrategyFsnotify, cfg.Watch.Strategy)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Interval.Duration)
	assert.Equal(t, DefaultSettleDelay, cfg.Watch.SettleDelay.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Watch.Timeout.Duration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLIPEDIT_EDITOR", "hx")
	t.Setenv("CLIPEDIT_TERMINAL", "iterm")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "hx", cfg.Editor.Command)
	assert.Equal(t, TerminalITerm, cfg.Terminal.App)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Setenv("CLIPEDIT_EDITOR", "")
	t.Setenv("CLIPEDIT_TERMINAL", "")

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad toml", content: "[editor\ncommand=", errMsg: "parse error"},
		{name: "bad duration", content: "[watch]\ninterval = \"soon\"", errMsg: "parse error"},
		{name: "zero interval", content: "[watch]\ninterval = \"0s\"", errMsg: "watch.interval"},
		{name: "negative timeout", content: "[watch]\ntimeout = \"-1s\"", errMsg: "watch.timeout"},
		{name: "unknown terminal", content: "[terminal]\napp = \"kitty\"", errMsg: "terminal.app"},
		{name: "unknown strategy", content: "[watch]\nstrategy = \"inotify\"", errMsg: "watch.strategy"},
		{name: "unknown driver", content: "[journal]\ndriver = \"postgres\"", errMsg: "journal.driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("CLIPEDIT_EDITOR", "")
	t.Setenv("CLIPEDIT_TERMINAL", "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Watch.Interval = Duration{500 * time.Millisecond}
	cfg.Terminal.Profile = "Editing"

	require.NoError(t, Save(path, cfg))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, loaded.Watch.Interval.Duration)
	assert.Equal(t, "Editing", loaded.Terminal.Profile)
}

func TestPath_Env(t *testing.T) {
	t.Setenv("CLIPEDIT_CONFIG", "/etc/clipedit.toml")

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/etc/clipedit.toml", path)
}

func TestJournalPath(t *testing.T) {
	cfg := Default()
	cfg.Journal.Path = "/var/db/sessions.db"

	path, err := cfg.JournalPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/db/sessions.db", path)

	cfg.Journal.Path = ""
	path, err = cfg.JournalPath()
	require.NoError(t, err)
	assert.Equal(t, "sessions.db", filepath.Base(path))
}

func TestLogDir(t *testing.T) {
	cfg := Default()

	dir, err := cfg.LogDir(false)
	require.NoError(t, err)
	assert.Empty(t, dir)

	dir, err = cfg.LogDir(true)
	require.NoError(t, err)
	assert.NotEmpty(t, dir)
}
