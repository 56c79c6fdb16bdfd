package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zenith-platform/readygate/internal/adapters/outbound/history"
)

// registerResources registers the readygate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// readygate://history - previous run summaries
	s.AddResource(
		mcplib.NewResource(
			"readygate://history",
			"Run History",
			mcplib.WithResourceDescription("Previous deployment readiness run summaries for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "readygate://history",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
