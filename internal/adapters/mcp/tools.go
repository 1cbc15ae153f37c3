package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"
)

var log = logging.ForComponent(logging.CompMCP)

// Services are the adapters the tools run against
type Services struct {
	Clipboard ports.Clipboard
	Locator   ports.EditorLocator
	Launcher  ports.TerminalLauncher
	Renderer  ports.ScriptRenderer
	Waiter    ports.ChangeWaiter
	Journal   ports.SessionJournal
	Options   domain.LaunchOptions

	// Timeout bounds edit_clipboard when the caller gives none; zero waits
	// until the request is cancelled
	Timeout time.Duration
}

// RegisterTools adds every clipedit tool to the MCP server.
func RegisterTools(s *server.MCPServer, svc *Services) {
	s.AddTool(pingTool(), pingHandler())
	RegisterReadTools(s, svc)
	RegisterWriteTools(s, svc)
}

// --- ping ---

func pingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check, returns pong"),
	)
}

func pingHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong"), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func (svc *Services) launchOptions(req mcp.CallToolRequest) domain.LaunchOptions {
	return domain.LaunchOptions{
		UseLoginShell: req.GetBool("login_shell", svc.Options.UseLoginShell),
		PassExtraFlag: req.GetBool("compat", svc.Options.PassExtraFlag),
	}
}
