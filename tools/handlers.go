package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/gitlab"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/internal/settings"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/metrics"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *gitlab.Client
	store  *settings.Store
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *gitlab.Client, store *settings.Store, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		store:  store,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "Publish":
		register(h, server, tool, spec, h.client.Publish)
	case "GetLink":
		register(h, server, tool, spec, h.client.GetLink)
	case "Delete":
		register(h, server, tool, spec, h.client.Delete)
	case "UpdateSettings":
		register(h, server, tool, spec, h.UpdateSettings)
	case "TokenURL":
		register(h, server, tool, spec, h.TokenURL)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// UpdateSettingsArgs updates the persisted bridge configuration. Empty
// fields are left unchanged.
type UpdateSettingsArgs struct {
	ProjectURL   string `json:"project_url,omitempty" jsonschema:"description=Full GitLab project URL; derived coordinates are recomputed"`
	PrivateToken string `json:"private_token,omitempty" jsonschema:"description=GitLab personal access token with the api scope"`
}

// UpdateSettingsResult reports the effective settings after the update.
type UpdateSettingsResult struct {
	Success      bool   `json:"success"`
	ProjectURL   string `json:"project_url"`
	Host         string `json:"host"`
	GroupSlug    string `json:"group_slug"`
	ProjectSlug  string `json:"project_slug"`
	URLResolved  bool   `json:"url_resolved"`
	TokenPresent bool   `json:"token_present"`
	Message      string `json:"message"`
}

// UpdateSettings applies settings changes, persists them, and pushes the new
// configuration into the wiki client. An unparseable project URL is stored
// as given with empty derived coordinates; operations then fail at request
// time rather than here.
func (h *HandlerRegistry) UpdateSettings(ctx context.Context, args UpdateSettingsArgs) (UpdateSettingsResult, error) {
	if args.ProjectURL != "" {
		h.store.SetProjectURL(args.ProjectURL)
	}
	if args.PrivateToken != "" {
		h.store.SetPrivateToken(args.PrivateToken)
	}

	if err := h.store.Save(); err != nil {
		return UpdateSettingsResult{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s := h.store.Settings()
	h.client.UpdateSettings(s)

	resolved := s.ProjectURL == "" || s.Host != ""
	message := "Settings updated"
	if !resolved {
		message = "Settings updated, but the project URL could not be parsed; check it includes scheme, host, group and project"
	}

	h.logger.Info("Settings updated",
		"project_url", s.ProjectURL,
		"url_resolved", resolved,
		"token_present", s.PrivateToken != "")

	return UpdateSettingsResult{
		Success:      true,
		ProjectURL:   s.ProjectURL,
		Host:         s.Host,
		GroupSlug:    s.GroupSlug,
		ProjectSlug:  s.ProjectSlug,
		URLResolved:  resolved,
		TokenPresent: s.PrivateToken != "",
		Message:      message,
	}, nil
}

// TokenURL builds the pre-filled token creation link for the configured host.
func (h *HandlerRegistry) TokenURL(ctx context.Context, args gitlab.TokenURLArgs) (gitlab.TokenURLResult, error) {
	name := args.Name
	if name == "" {
		name = gitlab.DefaultTokenName
	}

	link := h.client.Config().TokenURL(name)
	if link == "" {
		return gitlab.TokenURLResult{}, &gitlab.ValidationError{
			Field:      "project_url",
			Message:    "no GitLab host is configured",
			Suggestion: "Set the project URL with gitlab_wiki_update_settings first.",
		}
	}

	return gitlab.TokenURLResult{
		URL:     link,
		Scopes:  gitlab.TokenScopes,
		Message: "Open this URL to create a personal access token, then store it with gitlab_wiki_update_settings",
	}, nil
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the handler method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case gitlab.PublishArgs:
		attrs = append(attrs, "title", a.Title, "path", a.Path, "content_size", len(a.Content))
	case gitlab.GetLinkArgs:
		attrs = append(attrs, "title", a.Title, "path", a.Path)
	case gitlab.DeleteArgs:
		attrs = append(attrs, "title", a.Title, "path", a.Path)
	case UpdateSettingsArgs:
		attrs = append(attrs, "project_url", a.ProjectURL, "token_provided", a.PrivateToken != "")
	case gitlab.TokenURLArgs:
		attrs = append(attrs, "name", a.Name)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case gitlab.PublishResult:
		attrs = append(attrs, "outcome", string(r.Outcome), "clipboard_copied", r.ClipboardCopied)
	case gitlab.GetLinkResult:
		attrs = append(attrs, "link", r.Link, "clipboard_copied", r.ClipboardCopied)
	case gitlab.DeleteResult:
		attrs = append(attrs, "deleted_title", r.Title)
	case UpdateSettingsResult:
		attrs = append(attrs, "url_resolved", r.URLResolved)
	}

	h.logger.Info("Tool executed", attrs...)
}
