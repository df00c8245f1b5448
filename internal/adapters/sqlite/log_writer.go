// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/shipdesk/internal/ctxutil"
	"github.com/example/shipdesk/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using ActivityRepository.
type LogWriterAdapter struct {
	logRepo secondary.ActivityRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.ActivityRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs a created record.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, resource string, recordID int64) error {
	return w.writeLog(ctx, resource, recordID, "create", "")
}

// LogUpdate logs an updated record with the submitted field names as detail.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, resource string, recordID int64, fields []string) error {
	return w.writeLog(ctx, resource, recordID, "update", strings.Join(fields, ","))
}

// LogDelete logs a deleted record.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, resource string, recordID int64) error {
	return w.writeLog(ctx, resource, recordID, "delete", "")
}

// LogEmail logs one entry per emailed record. The detail holds the subject and
// the full recipient set so each entry stands on its own.
func (w *LogWriterAdapter) LogEmail(ctx context.Context, resource string, recordIDs []int64, subject string) error {
	ids := make([]string, len(recordIDs))
	for i, id := range recordIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	detail := fmt.Sprintf("%s [%s]", subject, strings.Join(ids, ","))

	for _, id := range recordIDs {
		if err := w.writeLog(ctx, resource, id, "email", detail); err != nil {
			return err
		}
	}
	return nil
}

// writeLog writes a log entry with common logic.
func (w *LogWriterAdapter) writeLog(ctx context.Context, resource string, recordID int64, action, detail string) error {
	return w.logRepo.Create(ctx, &secondary.ActivityRecord{
		Profile:   ctxutil.ProfileFromContext(ctx),
		Resource:  resource,
		RecordID:  recordID,
		Action:    action,
		Detail:    detail,
		RequestID: ctxutil.RequestIDFromContext(ctx),
	})
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
