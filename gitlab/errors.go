package gitlab

import (
	"fmt"
	"strings"
)

// ValidationError represents an input validation failure with recovery
// guidance for the caller.
type ValidationError struct {
	Field      string
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message))
	if e.Suggestion != "" {
		sb.WriteString("\n\nTo fix this:\n")
		sb.WriteString(e.Suggestion)
	}
	return sb.String()
}

// APIError is a non-2xx response from the wiki API on an operation whose
// failures are surfaced to the user (update and delete; create failures are
// swallowed, probe failures are reinterpreted as absence).
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("wiki %s failed: GitLab returned status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("wiki %s failed: GitLab returned status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
