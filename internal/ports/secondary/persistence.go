// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// CredentialStore defines the secondary port for session credential persistence.
type CredentialStore interface {
	// Token returns the bearer token saved for profile, or empty string if none.
	Token(ctx context.Context, profile string) (string, error)

	// Save stores token for profile, replacing any existing one.
	Save(ctx context.Context, profile, token string) error

	// Clear removes the token for profile. Clearing a missing session is not an error.
	Clear(ctx context.Context, profile string) error
}

// ActivityRepository defines the secondary port for the local activity log.
type ActivityRepository interface {
	// Create persists a new activity entry.
	Create(ctx context.Context, entry *ActivityRecord) error

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ActivityRecord represents an activity log entry as stored in persistence.
type ActivityRecord struct {
	ID        int64
	Timestamp string
	Profile   string // Empty string means null
	Resource  string
	RecordID  int64
	Action    string // 'create', 'update', 'delete', 'email'
	Detail    string // Empty string means null
	RequestID string // Empty string means null
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	Resource string
	RecordID int64
	Action   string
	Limit    int
}
