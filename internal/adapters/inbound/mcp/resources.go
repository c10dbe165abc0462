package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vnupipe/vnupipe/internal/adapters/outbound/config"
	"github.com/vnupipe/vnupipe/internal/adapters/outbound/history"
	"github.com/vnupipe/vnupipe/internal/application"
	"github.com/vnupipe/vnupipe/internal/domain"
)

// effectiveConfig is the view served by vnupipe://config.
type effectiveConfig struct {
	Project  domain.ProjectConfig     `json:"project"`
	Options  domain.Options           `json:"options"`
	FailOn   domain.FailPolicy        `json:"fail_on"`
	Settings domain.ValidatorSettings `json:"settings"`
	Argv     []string                 `json:"argv"`
}

// registerResources registers all vnupipe MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. vnupipe://config - effective validator configuration
	s.AddResource(
		mcplib.NewResource(
			"vnupipe://config",
			"Validator Configuration",
			mcplib.WithResourceDescription("Project configuration, normalized validator options and the resulting argument template"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. vnupipe://history - recent runs
	s.AddResource(
		mcplib.NewResource(
			"vnupipe://history",
			"Validation History",
			mcplib.WithResourceDescription("The most recent validation runs for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		user, err := config.LoadUserSettings(config.UserConfigDir())
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}

		opts := cfg.ResolvedOptions()
		inv := application.NewInvoker(opts, cfg.ApplySettings(user))

		return resourceJSON("vnupipe://config", effectiveConfig{
			Project:  cfg,
			Options:  opts,
			FailOn:   cfg.FailPolicy(),
			Settings: inv.Settings(),
			Argv:     inv.Template(),
		})
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath, 20)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return resourceJSON("vnupipe://history", entries)
	}
}

func resourceJSON(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
