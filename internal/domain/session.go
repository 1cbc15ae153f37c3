package domain

import (
	"fmt"
	"time"
)

// TempFilePrefix is the name prefix of every session temp file
const TempFilePrefix = "clipedit"

// EditorSource records how an editor executable was found
type EditorSource string

const (
	EditorSourcePathLookup EditorSource = "path-lookup"
	EditorSourceFallback   EditorSource = "fallback"
)

// EditorHandle is an absolute path to an editor executable.
// It is valid at discovery time only; nothing revalidates it before launch.
type EditorHandle struct {
	Path   string
	Source EditorSource
}

func (h EditorHandle) String() string {
	return h.Path
}

// LaunchOptions controls how the terminal session is started
type LaunchOptions struct {
	// UseLoginShell runs the editor through the user's $SHELL instead of /bin/sh
	UseLoginShell bool

	// PassExtraFlag appends the editor's compatibility flags (restricted config)
	PassExtraFlag bool
}

// Outcome is the final state of an edit session
type Outcome string

const (
	OutcomeUpdated        Outcome = "updated"
	OutcomeSetupFailed    Outcome = "setup-failed"
	OutcomeLaunchFailed   Outcome = "launch-failed"
	OutcomeCancelled      Outcome = "cancelled"
	OutcomeReadBackFailed Outcome = "read-back-failed"
	OutcomeClipboardError Outcome = "clipboard-failed"
)

// EditSession is one clipboard round trip through the external editor
type EditSession struct {
	ID             string
	TargetFile     string
	InitialContent string
	StartedAt      time.Time
	FinishedAt     time.Time
	Editor         string
	Backend        string
	BytesAfter     int

	// SnapshotSize stands in for InitialContent on sessions loaded from
	// the journal, which keeps sizes only
	SnapshotSize int
	Outcome      Outcome
	Error        string
}

// BytesBefore is the size of the clipboard snapshot handed to the editor
func (s *EditSession) BytesBefore() int {
	if s.InitialContent == "" {
		return s.SnapshotSize
	}
	return len(s.InitialContent)
}

// Duration is the wall time between temp file creation and completion.
// Sessions that have not finished report zero.
func (s *EditSession) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Finish stamps the session with its outcome
func (s *EditSession) Finish(outcome Outcome, at time.Time, err error) {
	s.Outcome = outcome
	s.FinishedAt = at
	if err != nil {
		s.Error = err.Error()
	}
}

// TempFileName returns the session file name for the given instant,
// e.g. "clipedit-1718000000000.txt".
func TempFileName(at time.Time) string {
	return fmt.Sprintf("%s-%d.txt", TempFilePrefix, at.UnixMilli())
}

// TempFileNameWithPID disambiguates two sessions started in the same millisecond
func TempFileNameWithPID(at time.Time, pid int) string {
	return fmt.Sprintf("%s-%d-%d.txt", TempFilePrefix, at.UnixMilli(), pid)
}
