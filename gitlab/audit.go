package gitlab

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"
)

// AuditOp identifies an audited write operation.
type AuditOp string

const (
	AuditOpPublish AuditOp = "publish"
	AuditOpDelete  AuditOp = "delete"
)

// AuditEntry records one write operation against the remote wiki.
type AuditEntry struct {
	Timestamp   string  `json:"timestamp"`
	Operation   AuditOp `json:"operation"`
	Title       string  `json:"title"`
	ContentHash string  `json:"content_hash,omitempty"`
	ContentSize int     `json:"content_size,omitempty"`
	Outcome     string  `json:"outcome,omitempty"`
	Link        string  `json:"link,omitempty"`
	ProjectURL  string  `json:"project_url"`
	Success     bool    `json:"success"`
	Error       string  `json:"error,omitempty"`
}

// AuditLogger records wiki write operations.
type AuditLogger interface {
	Log(entry AuditEntry)
}

// NullAuditLogger discards all entries.
type NullAuditLogger struct{}

func (NullAuditLogger) Log(AuditEntry) {}

// WriterAuditLogger writes entries as JSON lines to an io.Writer.
type WriterAuditLogger struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
}

// NewWriterAuditLogger creates an audit logger writing JSON lines to w.
func NewWriterAuditLogger(w io.Writer, logger *slog.Logger) *WriterAuditLogger {
	return &WriterAuditLogger{w: w, logger: logger}
}

func (l *WriterAuditLogger) Log(entry AuditEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error("Failed to encode audit entry", "error", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(append(data, '\n')); err != nil {
		l.logger.Error("Failed to write audit entry", "error", err)
	}
}

// hashContent returns the hex SHA-256 of content so the audit trail can
// reference what was published without storing it.
func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// audit records an operation if an audit logger is configured.
func (c *Client) audit(op AuditOp, title, content string, outcome PublishOutcome, link string, opErr error) {
	if c.auditLogger == nil {
		return
	}

	entry := AuditEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Operation:  op,
		Title:      title,
		Outcome:    string(outcome),
		Link:       link,
		ProjectURL: c.config.ProjectURL,
		Success:    opErr == nil,
	}
	if content != "" {
		entry.ContentHash = hashContent(content)
		entry.ContentSize = len(content)
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}

	c.auditLogger.Log(entry)
}
