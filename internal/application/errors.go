package application

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	ErrEditorNotFound       = errors.New("editor not found")
	ErrEmptyClipboard       = errors.New("no text in clipboard")
	ErrTerminalLaunchFailed = errors.New("terminal launch failed")
	ErrWaitCancelled        = errors.New("wait for edit cancelled")
	ErrClipboard            = errors.New("clipboard unavailable")
)

// EditorNotFoundError is returned when neither the path lookup nor any
// fallback location yields an editor. Hint is meant to be shown verbatim.
type EditorNotFoundError struct {
	Command string
	Tried   []string
	Hint    string
}

func (e *EditorNotFoundError) Error() string {
	if e.Hint != "" {
		return e.Hint
	}
	return fmt.Sprintf("%s not found in PATH or in %s", e.Command, strings.Join(e.Tried, ", "))
}

func (e *EditorNotFoundError) Is(target error) bool {
	return target == ErrEditorNotFound
}

// TerminalLaunchError represents a failed terminal-scripting invocation
type TerminalLaunchError struct {
	Backend string
	Output  string
	Err     error
}

func (e *TerminalLaunchError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("launch %s: %s", e.Backend, e.Output)
	}
	return fmt.Sprintf("launch %s: %v", e.Backend, e.Err)
}

func (e *TerminalLaunchError) Unwrap() error {
	return e.Err
}

func (e *TerminalLaunchError) Is(target error) bool {
	return target == ErrTerminalLaunchFailed
}

// WaitCancelledError is returned when the wait for an edit ends before the
// file changed (context cancelled or timed out)
type WaitCancelledError struct {
	Path string
	Err  error
}

func (e *WaitCancelledError) Error() string {
	return fmt.Sprintf("stopped waiting for %s: %v", e.Path, e.Err)
}

func (e *WaitCancelledError) Unwrap() error {
	return e.Err
}

func (e *WaitCancelledError) Is(target error) bool {
	return target == ErrWaitCancelled
}

// ValidationError represents a command input that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}
