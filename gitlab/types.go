package gitlab

// ========== Publish Types ==========

type PublishArgs struct {
	Title   string `json:"title,omitempty" jsonschema:"description=Wiki page title; defaults to the note file base name when empty"`
	Path    string `json:"path,omitempty" jsonschema:"description=Note file path used to derive the title when title is empty"`
	Content string `json:"content,omitempty" jsonschema:"description=Markdown content to publish"`
}

type PublishResult struct {
	Success         bool           `json:"success"`
	Title           string         `json:"title"`
	Link            string         `json:"link"`
	Outcome         PublishOutcome `json:"outcome"`
	ProbeFailed     bool           `json:"probe_failed,omitempty"`
	ClipboardCopied bool           `json:"clipboard_copied"`
	Message         string         `json:"message"`
}

// ========== Link Types ==========

type GetLinkArgs struct {
	Title string `json:"title,omitempty" jsonschema:"description=Wiki page title; defaults to the note file base name when empty"`
	Path  string `json:"path,omitempty" jsonschema:"description=Note file path used to derive the title when title is empty"`
}

type GetLinkResult struct {
	Success         bool   `json:"success"`
	Title           string `json:"title"`
	Link            string `json:"link"`
	ClipboardCopied bool   `json:"clipboard_copied"`
	Message         string `json:"message"`
}

// ========== Delete Types ==========

type DeleteArgs struct {
	Title string `json:"title,omitempty" jsonschema:"description=Wiki page title; defaults to the note file base name when empty"`
	Path  string `json:"path,omitempty" jsonschema:"description=Note file path used to derive the title when title is empty"`
}

type DeleteResult struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ========== Token Helper Types ==========

type TokenURLArgs struct {
	Name string `json:"name,omitempty" jsonschema:"description=Suggested token name; defaults to obsidian-gitlab-wiki"`
}

type TokenURLResult struct {
	URL     string `json:"url"`
	Scopes  string `json:"scopes"`
	Message string `json:"message"`
}
