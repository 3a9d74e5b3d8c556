package tools

// AllTools contains all tool specifications for the GitLab wiki bridge.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// WIKI TOOLS
	// ==========================================================================
	{
		Name:     "gitlab_wiki_publish_note",
		Method:   "Publish",
		Title:    "Publish Note to Wiki",
		Category: "wiki",
		Description: `Publish a note to the configured GitLab project wiki, creating the page or overwriting it if it already exists.

USE WHEN: User says "publish this note", "push to the wiki", "sync note to GitLab", "upload the note".

NOT FOR: Getting a page link without publishing (use gitlab_wiki_get_link). Not for removing pages (use gitlab_wiki_delete_note).

PARAMETERS:
- title: Wiki page title (optional; derived from path when empty)
- path: Note file path; its base name without extension becomes the title (optional)
- content: Markdown content to publish (required)

RETURNS: Outcome (created or updated), the wiki page link, and whether the link was copied to the clipboard.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "gitlab_wiki_get_link",
		Method:   "GetLink",
		Title:    "Get Wiki Link",
		Category: "wiki",
		Description: `Format the wiki page link for a note and copy it to the clipboard. No network request is made; the page is not checked to exist.

USE WHEN: User says "give me the wiki link", "copy the link for this note", "where is this note on the wiki".

NOT FOR: Publishing content (use gitlab_wiki_publish_note).

PARAMETERS:
- title: Wiki page title (optional; derived from path when empty)
- path: Note file path (optional)

RETURNS: The wiki page link and whether it was copied to the clipboard.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  false,
	},
	{
		Name:     "gitlab_wiki_delete_note",
		Method:   "Delete",
		Title:    "Delete Wiki Page",
		Category: "wiki",
		Description: `Delete the wiki page for a note from the configured GitLab project wiki.

USE WHEN: User says "delete this note from the wiki", "remove the wiki page", "unpublish".

NOT FOR: Deleting the local note file; only the remote wiki page is removed.

PARAMETERS:
- title: Wiki page title (optional; derived from path when empty)
- path: Note file path (optional)

RETURNS: Confirmation that the page was deleted.

WARNING: The page is removed immediately with no confirmation step.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  false,
		OpenWorld:   true,
	},

	// ==========================================================================
	// SETTINGS TOOLS
	// ==========================================================================
	{
		Name:     "gitlab_wiki_update_settings",
		Method:   "UpdateSettings",
		Title:    "Update Bridge Settings",
		Category: "settings",
		Description: `Update the bridge configuration: the GitLab project URL and/or the private token. Derived project coordinates (host, group, project) are recomputed from the URL and the settings are persisted.

USE WHEN: User says "set the project URL", "change the GitLab token", "point the bridge at another project".

NOT FOR: Creating a token (use gitlab_wiki_token_url for a pre-filled token creation link).

PARAMETERS:
- project_url: Full GitLab project URL, e.g. https://gitlab.com/my-group/my-project (optional)
- private_token: GitLab personal access token (optional)

RETURNS: The effective settings with derived project coordinates, and whether the project URL could be parsed.`,
		ReadOnly:   false,
		Idempotent: true,
		OpenWorld:  false,
	},
	{
		Name:     "gitlab_wiki_token_url",
		Method:   "TokenURL",
		Title:    "Get Token Creation URL",
		Category: "settings",
		Description: `Build a link to the GitLab personal access token creation page, pre-filled with a token name and the scopes the bridge needs.

USE WHEN: User says "I need a token", "how do I create an access token", "token setup link".

NOT FOR: Storing a token (use gitlab_wiki_update_settings once the token is created).

PARAMETERS:
- name: Suggested token name (optional, default obsidian-gitlab-wiki)

RETURNS: The pre-filled token creation URL and the requested scopes.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  false,
	},
}
