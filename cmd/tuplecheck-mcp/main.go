package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/tuplecheck/internal/version"
	"github.com/ludo-technologies/tuplecheck/mcp"
)

const serverName = "tuplecheck"

func main() {
	// MCP uses stdout for JSON-RPC, so all logging goes to stderr
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server)

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - check_tuples: Find single-item tuples missing a trailing comma")
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
