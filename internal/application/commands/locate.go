package commands

import (
	"context"
	"path/filepath"

	"clipedit/internal/domain"
	"clipedit/internal/ports"
)

// LocateEditorResult contains the discovered editor and, when requested,
// the launch script for a sample file
type LocateEditorResult struct {
	Editor domain.EditorHandle
	Script string
}

// LocateEditorCommand runs editor discovery without creating any session.
// With a renderer it also previews the script that would open File.
type LocateEditorCommand struct {
	locator  ports.EditorLocator
	renderer ports.ScriptRenderer
	File     string
	Options  domain.LaunchOptions
}

// NewLocateEditorCommand creates a new LocateEditorCommand. renderer may be nil.
func NewLocateEditorCommand(locator ports.EditorLocator, renderer ports.ScriptRenderer) *LocateEditorCommand {
	return &LocateEditorCommand{locator: locator, renderer: renderer}
}

// Execute runs the locate command
func (c *LocateEditorCommand) Execute(ctx context.Context) (*LocateEditorResult, error) {
	editor, err := c.locator.Locate()
	if err != nil {
		return nil, err
	}

	result := &LocateEditorResult{Editor: editor}
	if c.renderer != nil {
		file := c.File
		if file == "" {
			file = filepath.Join("/tmp", domain.TempFilePrefix+"-0.txt")
		}
		result.Script = c.renderer.Script(editor, file, c.Options)
	}
	return result, nil
}
