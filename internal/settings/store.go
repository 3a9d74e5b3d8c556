// Package settings persists the bridge configuration as a JSON file under
// the user's config directory and exposes declarative field descriptors for
// building a settings surface.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/gitlab"
)

const appDirName = "gitlab-wiki-bridge"

// Store handles loading and saving the settings file.
type Store struct {
	path     string
	settings gitlab.Settings
}

// NewStore creates a store rooted in the user's config directory. If no
// config directory can be resolved, the current directory is used.
func NewStore() *Store {
	dir, err := configDir()
	if err != nil {
		dir = "."
	}
	return &Store{path: filepath.Join(dir, "settings.json")}
}

// NewStoreAt creates a store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func configDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		dir := filepath.Join(xdgConfig, appDirName)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", err
		}
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".config", appDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return dir, nil
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Settings returns the current in-memory settings.
func (s *Store) Settings() gitlab.Settings {
	return s.settings
}

// Load reads the settings file. A missing file yields empty settings; the
// derived project fields are recomputed from the stored URL rather than
// trusted from disk.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = gitlab.Settings{}
			return nil
		}
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var loaded gitlab.Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	s.settings = gitlab.Settings{PrivateToken: loaded.PrivateToken}
	s.settings.SetProjectURL(loaded.ProjectURL)
	return nil
}

// Save writes the settings file with owner-only permissions; it holds the
// access token.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// SetProjectURL updates the project URL and recomputes the derived project
// coordinates.
func (s *Store) SetProjectURL(raw string) {
	s.settings.SetProjectURL(raw)
}

// SetPrivateToken updates the access token.
func (s *Store) SetPrivateToken(token string) {
	s.settings.PrivateToken = token
}

// Field describes one editable setting for a declaratively built settings
// surface. Get and Set close over the store.
type Field struct {
	Label       string
	Description string
	Get         func() string
	Set         func(value string)
}

// Fields returns the editable settings in display order.
func (s *Store) Fields() []Field {
	return []Field{
		{
			Label:       "Project URL",
			Description: "Full URL of the GitLab project whose wiki receives your notes, e.g. https://gitlab.com/my-group/my-project",
			Get:         func() string { return s.settings.ProjectURL },
			Set:         s.SetProjectURL,
		},
		{
			Label:       "Private token",
			Description: "GitLab personal access token with the api scope",
			Get:         func() string { return s.settings.PrivateToken },
			Set:         s.SetPrivateToken,
		},
	}
}

// SetByLabel applies a value through the field descriptor matching label.
func (s *Store) SetByLabel(label, value string) error {
	for _, f := range s.Fields() {
		if f.Label == label {
			f.Set(value)
			return nil
		}
	}
	return fmt.Errorf("unknown setting: %q", label)
}
