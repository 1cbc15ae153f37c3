package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"clipedit/internal/application/commands"
	"clipedit/internal/domain"
)

// RegisterReadTools adds the tools that never touch the clipboard.
func RegisterReadTools(s *server.MCPServer, svc *Services) {
	s.AddTool(locateEditorTool(), locateEditorHandler(svc))
	if svc.Journal != nil {
		s.AddTool(sessionHistoryTool(), sessionHistoryHandler(svc))
	}
}

// --- locate_editor ---

func locateEditorTool() mcp.Tool {
	return mcp.NewTool("locate_editor",
		mcp.WithDescription("Find the terminal editor clipedit would open, and optionally show the launch script."),
		mcp.WithBoolean("show_script",
			mcp.Description("Include the terminal-scripting program that would open a sample file"),
		),
		mcp.WithBoolean("login_shell",
			mcp.Description("Run the editor through the user's login shell"),
		),
		mcp.WithBoolean("compat",
			mcp.Description("Pass the editor's compatibility flags"),
		),
	)
}

func locateEditorHandler(svc *Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var renderer = svc.Renderer
		if !req.GetBool("show_script", false) {
			renderer = nil
		}

		cmd := commands.NewLocateEditorCommand(svc.Locator, renderer)
		cmd.Options = svc.launchOptions(req)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  (%s)\n", result.Editor.Path, result.Editor.Source)
		if result.Script != "" {
			sb.WriteString("\n")
			sb.WriteString(result.Script)
			sb.WriteString("\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- session_history ---

func sessionHistoryTool() mcp.Tool {
	return mcp.NewTool("session_history",
		mcp.WithDescription("List recent edit sessions, newest first. Clipboard content is never stored."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions (default 20)"),
		),
	)
}

func sessionHistoryHandler(svc *Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", commands.DefaultHistoryLimit)

		result, err := commands.NewListSessionsCommand(svc.Journal, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Sessions) == 0 {
			return mcp.NewToolResultText("No sessions."), nil
		}

		var sb strings.Builder
		for _, s := range result.Sessions {
			sb.WriteString(formatSession(s))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatSession(s domain.EditSession) string {
	line := fmt.Sprintf("%s  %s  %s  %d→%d bytes  %s",
		s.StartedAt.Format(time.RFC3339), s.ID, s.Outcome,
		s.BytesBefore(), s.BytesAfter, s.Duration().Round(time.Millisecond))
	if s.Error != "" {
		line += "  " + s.Error
	}
	return line
}
