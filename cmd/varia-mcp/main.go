package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "varia/internal/adapters/mcp"
	"varia/internal/adapters/sqlite"
	"varia/internal/application"
	"varia/internal/config"
)

func main() {
	studioFlag := flag.String("studio", config.Studio(), "studio (history) to operate on")
	dbFlag := flag.String("db", "", "path to the archive database (default: XDG data dir)")
	flag.Parse()

	archive := sqlite.NewArchive()
	if err := archive.Open(*dbFlag); err != nil {
		log.Fatalf("varia-mcp: %v", err)
	}
	defer archive.Close()

	studio := application.NewStudio(*studioFlag, archive, config.MaxHistorySize())
	if err := studio.Load(); err != nil {
		log.Fatalf("varia-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"varia-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, studio)
	mcpadapter.RegisterWriteTools(mcpServer, studio)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("varia-mcp: %v", err)
	}
}
