package watch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"clipedit/internal/application"
	"clipedit/internal/config"
	"clipedit/internal/ports"
)

// Notifier implements ports.ChangeWaiter with filesystem events. The file's
// directory is watched rather than the file because editors often save by
// writing a new file and renaming it over the old one. The poll tick stays
// on as a safety net for filesystems that drop events.
//
// Events are debounced: the file is read only once no event has arrived for
// the quiet period, and a difference must be seen on two consecutive quiet
// reads. A save that truncates before writing the same bytes back therefore
// never ends the wait.
type Notifier struct {
	interval time.Duration
	quiet    time.Duration
	settle   time.Duration
	readFile func(string) ([]byte, error)
}

// Ensure Notifier implements ChangeWaiter
var _ ports.ChangeWaiter = (*Notifier)(nil)

// NewNotifier creates an fsnotify-backed change waiter
func NewNotifier(interval, settle time.Duration) *Notifier {
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	return &Notifier{
		interval: interval,
		quiet:    interval,
		settle:   settle,
		readFile: os.ReadFile,
	}
}

// WaitForChange has the same contract as Poller.WaitForChange
func (n *Notifier) WaitForChange(ctx context.Context, path, baseline string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("fsnotify_unavailable", slog.String("error", err.Error()))
		return n.poller().WaitForChange(ctx, path, baseline)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		log.Warn("fsnotify_add_failed", slog.String("dir", filepath.Dir(path)), slog.String("error", err.Error()))
		return n.poller().WaitForChange(ctx, path, baseline)
	}

	want := []byte(baseline)
	name := filepath.Base(path)
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	quiet := time.NewTimer(n.quiet)
	quiet.Stop()
	defer quiet.Stop()
	pending := false

	changed := func(trigger string) bool {
		current, err := n.readFile(path)
		if err != nil {
			log.Debug("watch_read_failed", slog.String("path", path), slog.String("trigger", trigger), slog.String("error", err.Error()))
			return false
		}
		if bytes.Equal(current, want) {
			return false
		}
		log.Debug("change_detected", slog.String("path", path), slog.String("trigger", trigger))
		return true
	}

	events, errs := fsWatcher.Events, fsWatcher.Errors
	for {
		select {
		case <-ctx.Done():
			return &application.WaitCancelledError{Path: path, Err: ctx.Err()}

		case event, ok := <-events:
			if !ok {
				return n.poller().WaitForChange(ctx, path, baseline)
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = false
			quiet.Reset(n.quiet)

		case <-quiet.C:
			if !changed("event") {
				pending = false
				continue
			}
			if pending {
				return settle(ctx, path, n.settle)
			}
			pending = true
			quiet.Reset(n.quiet)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Debug("fsnotify_error", slog.String("error", err.Error()))

		case <-ticker.C:
			if changed("tick") {
				return settle(ctx, path, n.settle)
			}
		}
	}
}

func (n *Notifier) poller() *Poller {
	return &Poller{interval: n.interval, settle: n.settle, readFile: n.readFile}
}
