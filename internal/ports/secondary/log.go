package secondary

import "context"

// LogWriter defines the interface for recording controller mutations in the
// activity log. Implementations extract the profile and request id from context.
type LogWriter interface {
	// LogCreate logs a created record.
	LogCreate(ctx context.Context, resource string, recordID int64) error

	// LogUpdate logs an updated record. fields names the fields that were submitted.
	LogUpdate(ctx context.Context, resource string, recordID int64, fields []string) error

	// LogDelete logs a deleted record.
	LogDelete(ctx context.Context, resource string, recordID int64) error

	// LogEmail logs a bulk email sent for the given records.
	LogEmail(ctx context.Context, resource string, recordIDs []int64, subject string) error
}
