package gitlab

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/metrics"
)

// PublishOutcome tags how a publish attempt concluded.
type PublishOutcome string

const (
	// OutcomeCreated means the probe saw no page and the create succeeded.
	OutcomeCreated PublishOutcome = "created"

	// OutcomeUpdated means the page existed and was overwritten.
	OutcomeUpdated PublishOutcome = "updated"

	// OutcomeCreateIgnoredError marks a create whose non-2xx response was
	// logged and deliberately not escalated; the operation still reports
	// success with a copied link.
	OutcomeCreateIgnoredError PublishOutcome = "create_ignored_error"
)

// Publish creates or updates a wiki page. The API offers no atomic upsert,
// so existence is probed first with a read; any probe failure is treated as
// "page absent" and routes to create, whatever its cause. The race between
// probe and write is accepted: last write wins.
func (c *Client) Publish(ctx context.Context, args PublishArgs) (PublishResult, error) {
	title := noteTitle(args.Title, args.Path)
	if title == "" {
		return PublishResult{}, &ValidationError{
			Field:      "title",
			Message:    "page title is required",
			Suggestion: "Provide a title, or a note path whose base name becomes the title.",
		}
	}

	exists := c.probePage(ctx, title)

	payload := wikiPagePayload{Format: "markdown", Title: title, Content: args.Content}
	result := PublishResult{Title: title, ProbeFailed: !exists}

	if exists {
		status, body, err := c.doRequest(ctx, http.MethodPut, c.pageURL(title), payload)
		if err != nil {
			c.audit(AuditOpPublish, title, args.Content, "", "", err)
			return PublishResult{}, fmt.Errorf("failed to update wiki page: %w", err)
		}
		if !is2xx(status) {
			apiErr := &APIError{Operation: "update", StatusCode: status, Body: truncate(string(body), 200)}
			c.audit(AuditOpPublish, title, args.Content, "", "", apiErr)
			return PublishResult{}, apiErr
		}
		result.Outcome = OutcomeUpdated
		result.Message = "Wiki page updated"
	} else {
		status, body, err := c.doRequest(ctx, http.MethodPost, c.collectionURL(), payload)
		if err != nil {
			c.audit(AuditOpPublish, title, args.Content, "", "", err)
			return PublishResult{}, fmt.Errorf("failed to create wiki page: %w", err)
		}
		if !is2xx(status) {
			// Create failures do not abort the publish; the user still gets
			// a link, and the response is only logged.
			c.logger.Warn("Create response ignored",
				"title", title,
				"status", status,
				"body", truncate(string(body), 200))
			result.Outcome = OutcomeCreateIgnoredError
			result.Message = "Wiki page create response ignored"
		} else {
			result.Outcome = OutcomeCreated
			result.Message = "Wiki page created"
		}
	}

	result.Link = c.PageLink(title)
	result.ClipboardCopied = c.copyToClipboard(result.Link)
	result.Success = true
	metrics.RecordPublishOutcome(string(result.Outcome))

	c.logger.Info("Published wiki page",
		"title", title,
		"outcome", string(result.Outcome),
		"probe_failed", result.ProbeFailed,
		"content_size", len(args.Content))
	c.audit(AuditOpPublish, title, args.Content, result.Outcome, result.Link, nil)

	return result, nil
}

// probePage reads the page to infer existence. The content is discarded;
// every failure is reinterpreted as "absent" regardless of cause, so an
// auth failure here silently routes the publish to a create attempt. Known
// conflation, preserved deliberately.
func (c *Client) probePage(ctx context.Context, title string) bool {
	status, _, err := c.doRequest(ctx, http.MethodGet, c.pageURL(title), nil)
	if err != nil {
		c.logger.Debug("Probe failed, treating page as absent", "title", title, "error", err)
		return false
	}
	if !is2xx(status) {
		c.logger.Debug("Probe returned non-2xx, treating page as absent", "title", title, "status", status)
		return false
	}
	return true
}

// GetLink formats the wiki page link from configuration alone and copies it
// to the clipboard. No network call is made; the page may not exist.
func (c *Client) GetLink(ctx context.Context, args GetLinkArgs) (GetLinkResult, error) {
	title := noteTitle(args.Title, args.Path)
	if title == "" {
		return GetLinkResult{}, &ValidationError{
			Field:      "title",
			Message:    "page title is required",
			Suggestion: "Provide a title, or a note path whose base name becomes the title.",
		}
	}

	link := c.PageLink(title)
	copied := c.copyToClipboard(link)

	c.logger.Info("Formatted wiki link", "title", title, "copied", copied)

	return GetLinkResult{
		Success:         true,
		Title:           title,
		Link:            link,
		ClipboardCopied: copied,
		Message:         "Wiki link copied to clipboard",
	}, nil
}

// Delete removes the wiki page for a title. Exactly one request is issued;
// there is no prior existence check and no confirmation step. Errors are
// forwarded to the caller with the underlying message.
func (c *Client) Delete(ctx context.Context, args DeleteArgs) (DeleteResult, error) {
	title := noteTitle(args.Title, args.Path)
	if title == "" {
		return DeleteResult{}, &ValidationError{
			Field:      "title",
			Message:    "page title is required",
			Suggestion: "Provide a title, or a note path whose base name becomes the title.",
		}
	}

	status, body, err := c.doRequest(ctx, http.MethodDelete, c.pageURL(title), nil)
	if err != nil {
		c.audit(AuditOpDelete, title, "", "", "", err)
		return DeleteResult{}, fmt.Errorf("failed to delete wiki page: %w", err)
	}
	if !is2xx(status) {
		apiErr := &APIError{Operation: "delete", StatusCode: status, Body: truncate(string(body), 200)}
		c.audit(AuditOpDelete, title, "", "", "", apiErr)
		return DeleteResult{}, apiErr
	}

	c.logger.Info("Deleted wiki page", "title", title)
	c.audit(AuditOpDelete, title, "", "", "", nil)

	return DeleteResult{
		Success: true,
		Title:   title,
		Message: "Wiki page deleted",
	}, nil
}
