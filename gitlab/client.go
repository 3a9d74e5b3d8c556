// Package gitlab implements the wiki sync client: it maps note titles and
// content onto GitLab wiki REST API calls and produces user-facing outcomes.
package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/internal/clipboard"
	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/metrics"
)

// Client talks to the wiki REST API of a single GitLab project.
type Client struct {
	config      *Config
	httpClient  *http.Client
	logger      *slog.Logger
	clipboard   clipboard.Writer
	auditLogger AuditLogger
}

// NewClient creates a new wiki sync client. The system clipboard is used by
// default; swap it with SetClipboard for tests or headless environments.
func NewClient(config *Config, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		logger:    logger,
		clipboard: clipboard.System{},
	}
}

// SetClipboard replaces the clipboard sink.
func (c *Client) SetClipboard(w clipboard.Writer) {
	c.clipboard = w
}

// SetAuditLogger sets the audit logger for write operations. Pass nil to
// disable auditing.
func (c *Client) SetAuditLogger(a AuditLogger) {
	c.auditLogger = a
}

// UpdateSettings replaces the user settings in place. Settings edits and
// wiki operations are both driven by single user actions and never overlap,
// so no locking is needed here.
func (c *Client) UpdateSettings(s Settings) {
	c.config.Settings = s
}

// Config returns the client's current configuration.
func (c *Client) Config() *Config {
	return c.config
}

// projectID is the group/project pair with the joining slash itself
// percent-encoded, as required by GitLab's project-identifier addressing.
func (c *Client) projectID() string {
	return url.PathEscape(c.config.GroupSlug + "/" + c.config.ProjectSlug)
}

// collectionURL is the wiki collection endpoint for the configured project.
func (c *Client) collectionURL() string {
	return fmt.Sprintf("%s/api/v4/projects/%s/wikis", c.config.Host, c.projectID())
}

// pageURL addresses a single wiki page by its encoded title.
func (c *Client) pageURL(title string) string {
	return c.collectionURL() + "/" + url.PathEscape(title)
}

// PageLink formats the human-facing wiki page link for a title. Pure string
// construction from configuration; no request is made and the page is not
// verified to exist.
func (c *Client) PageLink(title string) string {
	return fmt.Sprintf("%s/%s/-/wikis/%s", c.config.Host, c.projectID(), url.PathEscape(title))
}

// wikiPagePayload is the JSON body for create and update calls.
type wikiPagePayload struct {
	Format  string `json:"format"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// doRequest performs a single API request with the credential header.
// No retries: the bridge reflects each user action as exactly one exchange.
// An unconfigured (empty-host) URL fails here at the transport layer with a
// generic error, indistinguishable from a connectivity failure.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("PRIVATE-TOKEN", c.config.PrivateToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(method, 0, time.Since(start).Seconds())
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}

	data, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	metrics.RecordAPICall(method, resp.StatusCode, time.Since(start).Seconds())
	if readErr != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", readErr)
	}

	return resp.StatusCode, data, nil
}

// copyToClipboard delivers a link to the clipboard sink. Failures are logged
// and reported in the result, never escalated: the link is still returned.
func (c *Client) copyToClipboard(link string) bool {
	if c.clipboard == nil {
		return false
	}
	if err := c.clipboard.WriteText(link); err != nil {
		c.logger.Warn("Clipboard write failed", "error", err)
		metrics.RecordClipboardWrite(false)
		return false
	}
	metrics.RecordClipboardWrite(true)
	return true
}

// TitleFromPath derives a wiki page title from a note file path: the base
// name with its extension stripped. Note paths are slash-separated
// (vault-relative), so the path package is used rather than filepath.
func TitleFromPath(notePath string) string {
	base := path.Base(strings.TrimSpace(notePath))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// noteTitle picks the explicit title, falling back to the note path.
func noteTitle(title, notePath string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	return TitleFromPath(notePath)
}

// is2xx reports whether a status code signals success.
func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
