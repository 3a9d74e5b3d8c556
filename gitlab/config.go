package gitlab

import (
	"net/url"
	"os"
	"time"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the bridge to GitLab
	DefaultUserAgent = "obsidian-gitlab-wiki-bridge/1.0"

	// DefaultTokenName is the suggested name for a generated access token
	DefaultTokenName = "obsidian-gitlab-wiki"

	// TokenScopes are the suggested scopes for a generated access token
	TokenScopes = "api,read_repository,write_repository"
)

// Settings is the flat, persisted configuration record. ProjectURL is the
// source of truth; Host, GroupSlug and ProjectSlug are derived from it and
// recomputed on every change, never edited by hand. When the URL fails to
// resolve they become empty strings, the "unconfigured" sentinel; stale
// values from a previous URL are never retained.
type Settings struct {
	ProjectURL   string `json:"project_url"`
	Host         string `json:"host"`
	GroupSlug    string `json:"group_slug"`
	ProjectSlug  string `json:"project_slug"`
	PrivateToken string `json:"private_token"`
}

// SetProjectURL stores the URL and recomputes the derived fields from it.
func (s *Settings) SetProjectURL(raw string) {
	s.ProjectURL = raw
	ref := Resolve(raw)
	s.Host = ref.Host
	s.GroupSlug = ref.GroupSlug
	s.ProjectSlug = ref.ProjectSlug
}

// Configured reports whether the settings point at a resolvable project.
func (s *Settings) Configured() bool {
	return s.Host != "" && s.GroupSlug != "" && s.ProjectSlug != ""
}

// Config holds the user settings plus connection options for the client.
type Config struct {
	Settings

	// Timeout for API requests
	Timeout time.Duration

	// UserAgent identifies the client to GitLab
	UserAgent string
}

// NewConfig wraps settings with default connection options.
func NewConfig(s Settings) *Config {
	return &Config{
		Settings:  s,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// ApplyEnv overlays GITLAB_* environment variables onto the config.
// Environment values take precedence over persisted settings but are not
// written back to the settings file.
func (c *Config) ApplyEnv() {
	if raw := os.Getenv("GITLAB_PROJECT_URL"); raw != "" {
		c.SetProjectURL(raw)
	}
	if token := os.Getenv("GITLAB_PRIVATE_TOKEN"); token != "" {
		c.PrivateToken = token
	}
	if t := os.Getenv("GITLAB_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			c.Timeout = d
		}
	}
	if ua := os.Getenv("GITLAB_USER_AGENT"); ua != "" {
		c.UserAgent = ua
	}
}

// TokenURL builds the browser link for generating a personal access token,
// pre-filled with the suggested token name and scopes. Returns "" when no
// host is configured.
func (c *Config) TokenURL(name string) string {
	if c.Host == "" {
		return ""
	}
	if name == "" {
		name = DefaultTokenName
	}
	q := url.Values{}
	q.Set("name", name)
	q.Set("scopes", TokenScopes)
	return c.Host + "/-/profile/personal_access_tokens?" + q.Encode()
}
