package gitlab

import (
	"net/url"
	"strings"
)

// ProjectRef identifies a GitLab project by host and path slugs.
// The zero value is the "unconfigured" sentinel.
type ProjectRef struct {
	Host        string `json:"host"`
	GroupSlug   string `json:"group_slug"`
	ProjectSlug string `json:"project_slug"`
}

// IsZero reports whether the ref is the all-empty unconfigured sentinel.
func (r ProjectRef) IsZero() bool {
	return r.Host == "" && r.GroupSlug == "" && r.ProjectSlug == ""
}

// Resolve parses a project URL into its host (scheme+authority) and the
// first two non-empty path segments. It never fails: a malformed URL, or one
// with fewer than two non-empty path segments, yields the all-empty sentinel.
// Empty segments from leading, trailing, or duplicated slashes are dropped,
// and segments past the second are ignored. Nested subgroups are therefore
// not supported; only the group/project URL shape resolves.
func Resolve(rawURL string) ProjectRef {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ProjectRef{}
	}

	segments := make([]string, 0, 2)
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 {
		return ProjectRef{}
	}

	return ProjectRef{
		Host:        parsed.Scheme + "://" + parsed.Host,
		GroupSlug:   segments[0],
		ProjectSlug: segments[1],
	}
}
