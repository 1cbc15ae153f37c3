package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"clipedit/internal/application"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompBridge)

// EditClipboardResult contains the result of a clipboard round trip
type EditClipboardResult struct {
	SessionID   string
	TempFile    string
	Editor      string
	Backend     string
	BytesBefore int
	BytesAfter  int
	Duration    time.Duration
	Message     string
}

// EditClipboardCommand copies the clipboard into a temp file, opens it in a
// terminal editor, waits for the file to change and copies it back.
type EditClipboardCommand struct {
	clipboard ports.Clipboard
	locator   ports.EditorLocator
	launcher  ports.TerminalLauncher
	waiter    ports.ChangeWaiter

	// Journal records the outcome; nil disables history
	Journal ports.SessionJournal

	Options domain.LaunchOptions

	// TempDir holds the session file; empty means os.TempDir()
	TempDir string

	// OnStage is called as the workflow enters each stage
	OnStage func(domain.Stage)

	now   func() time.Time
	newID func() string
	pid   int
}

// NewEditClipboardCommand creates a new EditClipboardCommand
func NewEditClipboardCommand(
	clipboard ports.Clipboard,
	locator ports.EditorLocator,
	launcher ports.TerminalLauncher,
	waiter ports.ChangeWaiter,
	opts domain.LaunchOptions,
) *EditClipboardCommand {
	return &EditClipboardCommand{
		clipboard: clipboard,
		locator:   locator,
		launcher:  launcher,
		waiter:    waiter,
		Options:   opts,
		now:       time.Now,
		newID:     uuid.NewString,
		pid:       os.Getpid(),
	}
}

// Validate checks the temp directory is usable
func (c *EditClipboardCommand) Validate() error {
	return application.ValidateDirectory("tempDir", c.tempDir())
}

// Execute runs the clipboard round trip. Nothing touches the filesystem or
// the terminal until the clipboard holds text and an editor was found.
func (c *EditClipboardCommand) Execute(ctx context.Context) (result *EditClipboardResult, err error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.stage(domain.StageReadingClipboard)
	content, err := c.clipboard.Read()
	if err != nil {
		log.Error("clipboard_read_failed", slog.String("error", err.Error()))
		return nil, clipboardError("read", err)
	}
	if content == "" {
		log.Info("clipboard_empty")
		return nil, application.ErrEmptyClipboard
	}

	c.stage(domain.StageLocatingEditor)
	editor, err := c.locator.Locate()
	if err != nil {
		log.Error("editor_not_found", slog.String("error", err.Error()))
		return nil, err
	}

	started := c.now()
	file, path, err := c.createTempFile(started)
	if err != nil {
		log.Error("temp_file_create_failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	session := &domain.EditSession{
		ID:             c.newID(),
		TargetFile:     path,
		InitialContent: content,
		StartedAt:      started,
		Editor:         editor.Path,
		Backend:        c.launcher.Backend(),
	}
	outcome := domain.OutcomeSetupFailed

	defer func() {
		c.removeTempFile(path)
		session.Finish(outcome, c.now(), err)
		c.record(session)
	}()

	_, err = file.WriteString(content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Error("temp_file_write_failed", slog.String("path", path), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	log.Info("session_started",
		slog.String("session", session.ID),
		slog.String("file", path),
		slog.String("editor", editor.Path),
		slog.String("editor_source", string(editor.Source)),
		slog.String("backend", session.Backend),
		slog.Int("bytes", session.BytesBefore()))

	c.stage(domain.StageLaunchingTerminal)
	if err = c.launcher.Launch(ctx, editor, path, c.Options); err != nil {
		outcome = domain.OutcomeLaunchFailed
		log.Error("terminal_launch_failed", slog.String("session", session.ID), slog.String("error", err.Error()))
		return nil, err
	}

	c.stage(domain.StageWaitingForEdit)
	if err = c.waiter.WaitForChange(ctx, path, content); err != nil {
		outcome = domain.OutcomeCancelled
		log.Warn("wait_cancelled", slog.String("session", session.ID), slog.String("error", err.Error()))
		if !errors.Is(err, application.ErrWaitCancelled) {
			err = &application.WaitCancelledError{Path: path, Err: err}
		}
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		outcome = domain.OutcomeReadBackFailed
		log.Error("read_back_failed", slog.String("session", session.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	session.BytesAfter = len(edited)

	c.stage(domain.StageWritingClipboard)
	if err = c.clipboard.Write(string(edited)); err != nil {
		outcome = domain.OutcomeClipboardError
		log.Error("clipboard_write_failed", slog.String("session", session.ID), slog.String("error", err.Error()))
		err = clipboardError("write", err)
		return nil, err
	}

	outcome = domain.OutcomeUpdated
	finished := c.now()
	c.stage(domain.StageDone)

	log.Info("session_finished",
		slog.String("session", session.ID),
		slog.Int("bytes_after", session.BytesAfter),
		slog.Duration("duration", finished.Sub(started)))

	return &EditClipboardResult{
		SessionID:   session.ID,
		TempFile:    path,
		Editor:      editor.Path,
		Backend:     session.Backend,
		BytesBefore: session.BytesBefore(),
		BytesAfter:  session.BytesAfter,
		Duration:    finished.Sub(started),
		Message:     application.MsgUpdated,
	}, nil
}

func (c *EditClipboardCommand) tempDir() string {
	if c.TempDir != "" {
		return c.TempDir
	}
	return os.TempDir()
}

// createTempFile creates the session file exclusively, falling back to a
// pid-qualified name when another session took the same millisecond
func (c *EditClipboardCommand) createTempFile(at time.Time) (*os.File, string, error) {
	dir := c.tempDir()
	names := []string{domain.TempFileName(at), domain.TempFileNameWithPID(at, c.pid)}

	var lastErr error
	for _, name := range names {
		path := filepath.Join(dir, name)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// removeTempFile never fails the session; the file lives in the temp dir
func (c *EditClipboardCommand) removeTempFile(path string) {
	if err := os.Remove(path); err != nil {
		log.Warn("cleanup_failed", slog.String("path", path), slog.String("error", err.Error()))
	}
}

func (c *EditClipboardCommand) record(session *domain.EditSession) {
	if c.Journal == nil {
		return
	}
	if err := c.Journal.Record(session); err != nil {
		log.Warn("journal_record_failed", slog.String("session", session.ID), slog.String("error", err.Error()))
	}
}

func (c *EditClipboardCommand) stage(s domain.Stage) {
	log.Debug("stage", slog.String("stage", s.String()))
	if c.OnStage != nil {
		c.OnStage(s)
	}
}

func clipboardError(op string, err error) error {
	if errors.Is(err, application.ErrClipboard) {
		return fmt.Errorf("%s clipboard: %w", op, err)
	}
	return fmt.Errorf("%s clipboard: %w: %v", op, application.ErrClipboard, err)
}
