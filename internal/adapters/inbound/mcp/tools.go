package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zenith-platform/readygate/internal/adapters/outbound/config"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/gitinfo"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/history"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/toolrunner"
	"github.com/zenith-platform/readygate/internal/application"
)

// registerTools registers the readygate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. readygate_check
	s.AddTool(
		mcplib.NewTool("readygate_check",
			mcplib.WithDescription("Run the full deployment readiness check and return the result as JSON. Checkers run read-only; no fix mode over MCP."),
			mcplib.WithBoolean("strict", mcplib.Description("Remove the CONDITIONAL outcome: any score below the GO threshold is NO-GO")),
		),
		handleCheck(projectPath),
	)

	// 2. readygate_config
	s.AddTool(
		mcplib.NewTool("readygate_config",
			mcplib.WithDescription("Return the effective readiness configuration (weights, thresholds, minimum scores) for the project"),
		),
		handleConfig(projectPath),
	)

	// 3. readygate_history
	s.AddTool(
		mcplib.NewTool("readygate_history",
			mcplib.WithDescription("Return previous readiness run summaries for the project"),
		),
		handleHistory(projectPath),
	)
}

// newService wires the standard outbound adapters.
func newService() *application.CheckService {
	return application.NewCheckService(
		toolrunner.New(),
		config.New(),
		gitinfo.New(),
		history.New(),
	)
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		strict, _ := request.GetArguments()["strict"].(bool)

		res, err := newService().Run(ctx, projectPath, application.RunOptions{Strict: strict})
		if err != nil {
			return errorResult(fmt.Sprintf("readiness check failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleConfig(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := newService().Config(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}
		return jsonResult(cfg)
	}
}

func handleHistory(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := newService().History(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history failed: %v", err)), nil
		}
		return jsonResult(entries)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
