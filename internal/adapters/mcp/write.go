package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"clipedit/internal/adapters/clipboard"
	"clipedit/internal/application"
	"clipedit/internal/application/commands"
)

// RegisterWriteTools adds the tools that open an editor.
func RegisterWriteTools(s *server.MCPServer, svc *Services) {
	s.AddTool(editClipboardTool(), editClipboardHandler(svc))
}

// --- edit_clipboard ---

func editClipboardTool() mcp.Tool {
	return mcp.NewTool("edit_clipboard",
		mcp.WithDescription("Open the clipboard text in a terminal editor and block until the file is saved with new content. "+
			"With `text`, that text is edited instead and the result is returned without touching the system clipboard."),
		mcp.WithString("text",
			mcp.Description("Text to edit instead of the clipboard contents"),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Give up waiting for the edit after this many seconds"),
		),
		mcp.WithBoolean("login_shell",
			mcp.Description("Run the editor through the user's login shell"),
		),
		mcp.WithBoolean("compat",
			mcp.Description("Pass the editor's compatibility flags"),
		),
	)
}

func editClipboardHandler(svc *Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		board := svc.Clipboard
		var scratch *clipboard.Memory
		if text != "" {
			scratch = clipboard.NewMemory(text)
			board = scratch
		}

		timeout := svc.Timeout
		if secs := req.GetFloat("timeout_seconds", 0); secs > 0 {
			timeout = time.Duration(secs * float64(time.Second))
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cmd := commands.NewEditClipboardCommand(board, svc.Locator, svc.Launcher, svc.Waiter, svc.launchOptions(req))
		cmd.Journal = svc.Journal

		result, err := cmd.Execute(ctx)
		if err != nil {
			log.Warn("edit_clipboard_failed", slog.String("error", err.Error()))
			return mcp.NewToolResultError(application.UserMessage(err)), nil
		}

		log.Info("edit_clipboard_done", slog.String("session", result.SessionID))
		if scratch != nil {
			edited, _ := scratch.Read()
			return mcp.NewToolResultText(edited), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (%d→%d bytes)", result.Message, result.BytesBefore, result.BytesAfter)), nil
	}
}
