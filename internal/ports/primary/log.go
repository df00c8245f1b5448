package primary

import "context"

// LogService defines the primary port for the local activity log.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters, newest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents an activity log entry at the port boundary.
type LogEntry struct {
	ID        int64
	Timestamp string
	Profile   string
	Resource  string
	RecordID  int64
	Action    string // 'create', 'update', 'delete', 'email'
	Detail    string
	RequestID string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	Resource string
	RecordID int64
	Action   string
	Limit    int
}
