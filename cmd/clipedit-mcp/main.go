package main

import (
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "clipedit/internal/adapters/mcp"
	"clipedit/internal/config"
	"clipedit/internal/logging"
	"clipedit/internal/wiring"
)

func main() {
	defaultPath, _ := config.Path()
	configFlag := flag.String("config", defaultPath, "path to config.toml")
	debugFlag := flag.Bool("debug", false, "write debug logs to ~/.local/state/clipedit")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("clipedit-mcp: %v", err)
	}
	// stdout carries the protocol, so logs only ever go to the log file
	if err := wiring.InitLogging(cfg, *debugFlag); err != nil {
		log.Fatalf("clipedit-mcp: %v", err)
	}
	defer logging.Shutdown()

	deps := wiring.Build(cfg)
	defer deps.Close()

	mcpServer := server.NewMCPServer(
		"clipedit-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpadapter.RegisterTools(mcpServer, &mcpadapter.Services{
		Clipboard: deps.Clipboard,
		Locator:   deps.Locator,
		Launcher:  deps.Launcher,
		Renderer:  deps.Launcher,
		Waiter:    deps.Waiter,
		Journal:   deps.Journal,
		Options:   deps.LaunchOptions(),
		Timeout:   cfg.Watch.Timeout.Duration,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Printf("clipedit-mcp: %v", err)
	}
}
