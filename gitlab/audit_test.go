package gitlab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNullAuditLogger(t *testing.T) {
	// Must not panic; entries go nowhere.
	NullAuditLogger{}.Log(AuditEntry{Operation: AuditOpPublish, Title: "x"})
}

func TestWriterAuditLoggerJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterAuditLogger(&buf, testLogger())

	logger.Log(AuditEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Operation: AuditOpPublish,
		Title:     "First",
		Success:   true,
	})
	logger.Log(AuditEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Operation: AuditOpDelete,
		Title:     "Second",
		Success:   false,
		Error:     "boom",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var first, second AuditEntry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2: %v", err)
	}
	if first.Operation != AuditOpPublish || first.Title != "First" {
		t.Errorf("first = %+v", first)
	}
	if second.Operation != AuditOpDelete || second.Error != "boom" {
		t.Errorf("second = %+v", second)
	}
}

func TestWriterAuditLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterAuditLogger(&buf, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Log(AuditEntry{Operation: AuditOpPublish, Title: fmt.Sprintf("page-%d", n)})
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("lines = %d, want 20", len(lines))
	}
	for _, line := range lines {
		var entry AuditEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("corrupt line %q: %v", line, err)
		}
	}
}

func TestHashContent(t *testing.T) {
	// Known SHA-256 of "hello".
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := hashContent("hello"); got != want {
		t.Errorf("hashContent = %q, want %q", got, want)
	}
	if hashContent("a") == hashContent("b") {
		t.Error("distinct content should hash differently")
	}
}
