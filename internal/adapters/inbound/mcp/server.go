package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// NewVnupipeMCPServer creates a new MCP server with the vnupipe tools and
// resources registered. The projectPath is the root directory whose HTML
// files are validated. diag receives the validator diagnostics; nil
// discards them.
func NewVnupipeMCPServer(projectPath string, diag *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"vnupipe",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, diag)
	registerResources(s, projectPath)

	return s
}
