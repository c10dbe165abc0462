package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/history"
	"github.com/vnupipe/vnupipe/internal/app"
	"github.com/vnupipe/vnupipe/internal/application"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func registerTools(s *server.MCPServer, projectPath string, diag *slog.Logger) {
	s.AddTool(
		mcplib.NewTool("vnupipe_validate",
			mcplib.WithDescription("Run the vnu HTML validator over project files. Returns one result per file with the validator messages. Use this after editing HTML to confirm the markup is valid."),
			mcplib.WithString("paths",
				mcplib.Description("Comma-separated files or directories relative to the project root. Empty validates the whole project."),
			),
			mcplib.WithString("format",
				mcplib.Description("Validator output format: gnu, xml, json or text. Only json yields per-message records."),
			),
			mcplib.WithString("fail_on",
				mcplib.Description("Lowest severity that fails a file: error, info or none"),
			),
			mcplib.WithBoolean("errors_only",
				mcplib.Description("Report errors only, suppressing warnings"),
			),
			mcplib.WithBoolean("changed",
				mcplib.Description("Only validate files with uncommitted git changes"),
			),
		),
		handleValidate(projectPath, diag),
	)

	s.AddTool(
		mcplib.NewTool("vnupipe_history",
			mcplib.WithDescription("List recent validation runs for the project, oldest first."),
			mcplib.WithNumber("limit",
				mcplib.Description("Maximum number of runs to return (default 10)"),
			),
		),
		handleHistory(projectPath),
	)
}

func handleValidate(projectPath string, diag *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		req := application.ValidateRequest{Options: map[string]any{}}
		if pathsStr, ok := args["paths"].(string); ok && pathsStr != "" {
			for _, p := range splitAndTrim(pathsStr) {
				if !filepath.IsAbs(p) {
					p = filepath.Join(projectPath, p)
				}
				req.Targets = append(req.Targets, p)
			}
		}
		if format, ok := args["format"].(string); ok && format != "" {
			if _, ok := domain.ParseFormat(format); !ok {
				return errorResult(fmt.Sprintf("unknown format %q (valid: gnu, xml, json, text)", format)), nil
			}
			req.Options[domain.OptionFormat] = format
		}
		if errorsOnly, ok := args["errors_only"].(bool); ok {
			req.Options[domain.OptionErrorsOnly] = errorsOnly
		}
		req.FailOn, _ = args["fail_on"].(string)
		req.Changed, _ = args["changed"].(bool)

		svc, err := app.NewValidateService(diag)
		if err != nil {
			return errorResult(fmt.Sprintf("loading settings: %v", err)), nil
		}

		report, err := svc.Validate(ctx, projectPath, req)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleHistory(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		limit := 10
		if n, ok := request.GetArguments()["limit"].(float64); ok && n > 0 {
			limit = int(n)
		}

		entries, err := history.New().Load(projectPath, limit)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history: %v", err)), nil
		}
		if len(entries) == 0 {
			return textResult("No validation runs recorded yet."), nil
		}
		return jsonResult(entries)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
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

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
