package mcp

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipedit/internal/adapters/clipboard"
	"clipedit/internal/application"
	"clipedit/internal/domain"
)

type stubLocator struct {
	err error
}

func (s stubLocator) Locate() (domain.EditorHandle, error) {
	if s.err != nil {
		return domain.EditorHandle{}, s.err
	}
	return domain.EditorHandle{Path: "/usr/local/bin/nvim", Source: domain.EditorSourcePathLookup}, nil
}

type stubLauncher struct {
	opts domain.LaunchOptions
}

func (s *stubLauncher) Backend() string { return "terminal" }

func (s *stubLauncher) Launch(_ context.Context, _ domain.EditorHandle, _ string, opts domain.LaunchOptions) error {
	s.opts = opts
	return nil
}

func (s *stubLauncher) Script(editor domain.EditorHandle, file string, _ domain.LaunchOptions) string {
	return "tell application \"Terminal\" " + editor.Path + " " + file
}

// appendWaiter edits the file by appending, or blocks until ctx ends
type appendWaiter struct {
	suffix string
	block  bool
}

func (w appendWaiter) WaitForChange(ctx context.Context, path, baseline string) error {
	if w.block {
		<-ctx.Done()
		return &application.WaitCancelledError{Path: path, Err: ctx.Err()}
	}
	return os.WriteFile(path, []byte(baseline+w.suffix), 0o600)
}

type memJournal struct {
	sessions []domain.EditSession
}

func (j *memJournal) Record(s *domain.EditSession) error {
	j.sessions = append([]domain.EditSession{*s}, j.sessions...)
	return nil
}

func (j *memJournal) Recent(limit int) ([]domain.EditSession, error) {
	if limit > len(j.sessions) {
		limit = len(j.sessions)
	}
	return j.sessions[:limit], nil
}

func (j *memJournal) Close() error { return nil }

func newServices() *Services {
	launcher := &stubLauncher{}
	return &Services{
		Clipboard: clipboard.NewMemory("from clipboard"),
		Locator:   stubLocator{},
		Launcher:  launcher,
		Renderer:  launcher,
		Waiter:    appendWaiter{suffix: "!"},
		Journal:   &memJournal{},
		Options:   domain.LaunchOptions{PassExtraFlag: true},
	}
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	var text string
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		text = c.Text
	case *mcp.TextContent:
		text = c.Text
	default:
		t.Fatalf("unexpected content type %T", c)
	}
	return text, result.IsError
}

func TestPing(t *testing.T) {
	text, isErr := call(t, pingHandler(), nil)
	assert.False(t, isErr)
	assert.Equal(t, "pong", text)
}

func TestEditClipboard_SystemClipboard(t *testing.T) {
	svc := newServices()

	text, isErr := call(t, editClipboardHandler(svc), map[string]any{})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Updated clipboard with edited content")

	got, _ := svc.Clipboard.Read()
	assert.Equal(t, "from clipboard!", got)

	sessions, _ := svc.Journal.Recent(5)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.OutcomeUpdated, sessions[0].Outcome)
}

func TestEditClipboard_TextArgumentLeavesClipboardAlone(t *testing.T) {
	svc := newServices()

	text, isErr := call(t, editClipboardHandler(svc), map[string]any{"text": "draft"})
	require.False(t, isErr, text)
	assert.Equal(t, "draft!", text)

	got, _ := svc.Clipboard.Read()
	assert.Equal(t, "from clipboard", got)
	assert.Zero(t, svc.Clipboard.(*clipboard.Memory).Writes())
}

func TestEditClipboard_LaunchOptionsFromArguments(t *testing.T) {
	svc := newServices()
	launcher := svc.Launcher.(*stubLauncher)

	_, isErr := call(t, editClipboardHandler(svc), map[string]any{"login_shell": true, "compat": false})
	require.False(t, isErr)
	assert.True(t, launcher.opts.UseLoginShell)
	assert.False(t, launcher.opts.PassExtraFlag)
}

func TestEditClipboard_EmptyClipboard(t *testing.T) {
	svc := newServices()
	svc.Clipboard = clipboard.NewMemory("")

	text, isErr := call(t, editClipboardHandler(svc), map[string]any{})
	assert.True(t, isErr)
	assert.Equal(t, "No text in clipboard", text)
}

func TestEditClipboard_Timeout(t *testing.T) {
	svc := newServices()
	svc.Waiter = appendWaiter{block: true}

	start := time.Now()
	text, isErr := call(t, editClipboardHandler(svc), map[string]any{"timeout_seconds": 0.05})
	assert.True(t, isErr)
	assert.Equal(t, "Edit cancelled", text)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLocateEditor(t *testing.T) {
	svc := newServices()

	text, isErr := call(t, locateEditorHandler(svc), map[string]any{})
	require.False(t, isErr)
	assert.Equal(t, "/usr/local/bin/nvim  (path-lookup)\n", text)

	text, _ = call(t, locateEditorHandler(svc), map[string]any{"show_script": true})
	assert.Contains(t, text, `tell application "Terminal"`)
}

func TestLocateEditor_NotFound(t *testing.T) {
	svc := newServices()
	svc.Locator = stubLocator{err: &application.EditorNotFoundError{Hint: "Neovim not found"}}

	text, isErr := call(t, locateEditorHandler(svc), map[string]any{})
	assert.True(t, isErr)
	assert.Equal(t, "Neovim not found", text)
}

func TestSessionHistory(t *testing.T) {
	svc := newServices()

	text, _ := call(t, sessionHistoryHandler(svc), map[string]any{})
	assert.Equal(t, "No sessions.", text)

	_, isErr := call(t, editClipboardHandler(svc), map[string]any{})
	require.False(t, isErr)

	text, isErr = call(t, sessionHistoryHandler(svc), map[string]any{"limit": 5})
	require.False(t, isErr)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "updated")
	assert.Contains(t, lines[0], "14→15 bytes")
}
