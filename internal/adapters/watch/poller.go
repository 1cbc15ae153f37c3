package watch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"time"

	"clipedit/internal/application"
	"clipedit/internal/config"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompWatch)

// Poller implements ports.ChangeWaiter by re-reading the file on a fixed tick
type Poller struct {
	interval time.Duration
	settle   time.Duration
	readFile func(string) ([]byte, error)
}

// Ensure Poller implements ChangeWaiter
var _ ports.ChangeWaiter = (*Poller)(nil)

// NewPoller creates a poller. The settle delay lets the terminal process
// exit and release the file before the caller reads it.
func NewPoller(interval, settle time.Duration) *Poller {
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		settle:   settle,
		readFile: os.ReadFile,
	}
}

// WaitForChange blocks until the file content differs from baseline. Any
// difference counts as completion, including a partial write from a crashed
// editor. There is no deadline other than ctx.
func (p *Poller) WaitForChange(ctx context.Context, path, baseline string) error {
	want := []byte(baseline)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			return &application.WaitCancelledError{Path: path, Err: ctx.Err()}
		case <-ticker.C:
		}
		ticks++

		current, err := p.readFile(path)
		if err != nil {
			// editor may hold the file mid-write; try again next tick
			log.Debug("poll_read_failed", slog.String("path", path), slog.Int("tick", ticks), slog.String("error", err.Error()))
			continue
		}
		if bytes.Equal(current, want) {
			continue
		}

		log.Debug("change_detected", slog.String("path", path), slog.Int("ticks", ticks))
		return settle(ctx, path, p.settle)
	}
}

func settle(ctx context.Context, path string, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return &application.WaitCancelledError{Path: path, Err: ctx.Err()}
	}
}

// New returns the change waiter selected by cfg.Strategy
func New(cfg config.WatchConfig) ports.ChangeWaiter {
	if cfg.Strategy == config.StrategyFsnotify {
		return NewNotifier(cfg.Interval.Duration, cfg.SettleDelay.Duration)
	}
	return NewPoller(cfg.Interval.Duration, cfg.SettleDelay.Duration)
}
