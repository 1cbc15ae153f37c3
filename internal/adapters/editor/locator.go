package editor

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"clipedit/internal/application"
	"clipedit/internal/config"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompEditor)

// Locator implements ports.EditorLocator
type Locator struct {
	command   string
	fallbacks []string
	hint      string

	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

// Ensure Locator implements EditorLocator
var _ ports.EditorLocator = (*Locator)(nil)

// Option configures the Locator
type Option func(*Locator)

// WithLookPath replaces exec.LookPath
func WithLookPath(fn func(string) (string, error)) Option {
	return func(l *Locator) {
		l.lookPath = fn
	}
}

// WithStat replaces os.Stat for the fallback checks
func WithStat(fn func(string) (os.FileInfo, error)) Option {
	return func(l *Locator) {
		l.stat = fn
	}
}

// NewLocator creates a locator for the configured editor
func NewLocator(cfg config.EditorConfig, opts ...Option) *Locator {
	l := &Locator{
		command:   cfg.Command,
		fallbacks: cfg.FallbackPaths,
		hint:      cfg.InstallHint,
		lookPath:  exec.LookPath,
		stat:      os.Stat,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the editor executable, preferring the PATH lookup so that
// symlinks and version managers win over packaged installs
func (l *Locator) Locate() (domain.EditorHandle, error) {
	if l.command != "" {
		if path, err := l.lookPath(l.command); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			log.Debug("editor_found", slog.String("path", path), slog.String("source", string(domain.EditorSourcePathLookup)))
			return domain.EditorHandle{Path: path, Source: domain.EditorSourcePathLookup}, nil
		}
	}

	// GUI-launched processes often inherit a minimal PATH
	for _, candidate := range l.fallbacks {
		info, err := l.stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		log.Debug("editor_found", slog.String("path", candidate), slog.String("source", string(domain.EditorSourceFallback)))
		return domain.EditorHandle{Path: candidate, Source: domain.EditorSourceFallback}, nil
	}

	err := &application.EditorNotFoundError{
		Command: l.command,
		Tried:   l.fallbacks,
		Hint:    l.hint,
	}
	log.Warn("editor_not_found", slog.String("command", l.command), slog.Int("fallbacks", len(l.fallbacks)))
	return domain.EditorHandle{}, err
}
