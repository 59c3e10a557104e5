package security

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arvenkatachalam/obsidian-cli-mcp/internal/domain"
)

// CallRecord is one delegated call in the audit trail.
type CallRecord struct {
	Timestamp  time.Time        `json:"timestamp"`
	CallID     string           `json:"call_id"`
	Tool       string           `json:"tool"`
	Command    string           `json:"command,omitempty"`
	Outcome    string           `json:"outcome"` // "success" or an ErrorCode
	DurationMS int64            `json:"duration_ms"`
	Detail     string           `json:"detail,omitempty"`
	Code       domain.ErrorCode `json:"code,omitempty"`
}

// FileAuditLogger appends call records as JSONL to a file. Appends are
// mutexed; the logger holds no other cross-call state.
type FileAuditLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileAuditLogger creates an audit logger that appends to the given path.
// The file is created with 0600 permissions if it does not exist.
func NewFileAuditLogger(path string) (*FileAuditLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &FileAuditLogger{file: f}, nil
}

// Log writes a call record as a single JSON line. A nil receiver is a no-op
// so callers can thread an optional logger without nil checks.
func (a *FileAuditLogger) Log(ctx context.Context, rec CallRecord) error {
	if a == nil {
		return nil
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return domain.NewDomainError("FileAuditLogger.Log", domain.ErrAuditWrite, err.Error())
	}

	a.mu.Lock()
	_, werr := a.file.Write(append(data, '\n'))
	a.mu.Unlock()
	if werr != nil {
		return domain.NewDomainError("FileAuditLogger.Log", domain.ErrAuditWrite, werr.Error())
	}

	// Also emit as an OTel span event if a span is active.
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("audit.call", trace.WithAttributes(
			attribute.String("audit.call_id", rec.CallID),
			attribute.String("audit.tool", rec.Tool),
			attribute.String("audit.outcome", rec.Outcome),
		))
	}

	return nil
}

// Close flushes and closes the audit log file.
func (a *FileAuditLogger) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}
