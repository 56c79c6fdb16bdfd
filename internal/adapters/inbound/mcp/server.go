package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewReadygateMCPServer creates an MCP server with the readygate tools and
// resources registered. The projectPath is the root of the project being
// validated.
func NewReadygateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"readygate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
