// Package worker consumes record change events and appends them to a
// structured audit log, one JSON line per committed mutation.
package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"spendlog/internal/events"
	applog "spendlog/internal/log"
)

// AuditWorker writes one audit line per consumed record event.
type AuditWorker struct {
	audit  *slog.Logger
	closer io.Closer
}

// NewAuditWorker opens (or creates) the audit log at path. An empty path
// writes to stdout.
func NewAuditWorker(path string) (*AuditWorker, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer

	if path != "" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create audit log directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		out = f
		closer = f
	}

	return &AuditWorker{
		audit:  slog.New(slog.NewJSONHandler(out, nil)),
		closer: closer,
	}, nil
}

// HandleEvent records a single consumed event. It never fails on content:
// whatever arrived is what gets audited.
func (w *AuditWorker) HandleEvent(ctx context.Context, msg *events.RecordEventMessage) error {
	w.audit.InfoContext(ctx, "record event",
		"kind", msg.Kind,
		applog.FieldRecordID, msg.RecordID,
		applog.FieldDate, msg.Date,
		applog.FieldAmountCents, msg.AmountCents,
		applog.FieldCategory, msg.Category,
		"note", msg.Note,
		"occurred_at", msg.Timestamp)
	return nil
}

func (w *AuditWorker) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
