// GitLab Wiki Bridge - A Model Context Protocol server that publishes notes
// to a GitLab project wiki, formats page links, and deletes pages.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/gitlab"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/internal/settings"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/tools"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/tracing"
)

const (
	ServerName    = "gitlab-wiki-bridge"
	ServerVersion = "1.0.0"
)

const serverInstructions = `GitLab Wiki Bridge publishes notes to a GitLab project wiki.

Available tools:
- gitlab_wiki_publish_note: Create or overwrite a wiki page from a note
- gitlab_wiki_get_link: Format a wiki page link and copy it to the clipboard
- gitlab_wiki_delete_note: Delete a wiki page
- gitlab_wiki_update_settings: Set the project URL and private token
- gitlab_wiki_token_url: Get a pre-filled personal access token creation link

Configure via settings file, gitlab_wiki_update_settings, or environment variables:
- GITLAB_PROJECT_URL: Full project URL (e.g., https://gitlab.com/my-group/my-project)
- GITLAB_PRIVATE_TOKEN: Personal access token with the api scope`

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load persisted settings
	store := settings.NewStore()
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Environment variables override the settings file
	config := gitlab.NewConfig(store.Settings())
	config.ApplyEnv()

	// Initialize tracing
	ctx := context.Background()
	shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Failed to initialize tracing, continuing without it", "error", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	// Create wiki client
	client := gitlab.NewClient(config, logger)

	// Optional audit trail of wiki writes
	if auditPath := os.Getenv("GITLAB_WIKI_AUDIT_LOG"); auditPath != "" {
		f, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			log.Fatalf("Failed to open audit log: %v", err)
		}
		defer f.Close()
		client.SetAuditLogger(gitlab.NewWriterAuditLogger(f, logger))
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(client, store, logger)
	registry.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting GitLab Wiki Bridge",
		"name", ServerName,
		"version", ServerVersion,
		"project_url", config.ProjectURL,
		"configured", config.Configured(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
