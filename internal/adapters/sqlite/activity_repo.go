package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shipdesk/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityRepository with SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create persists a new activity entry and sets its ID.
func (r *ActivityRepository) Create(ctx context.Context, entry *secondary.ActivityRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (profile, resource, record_id, action, detail, request_id) VALUES (?, ?, ?, ?, ?, ?)`,
		nullString(entry.Profile),
		entry.Resource,
		entry.RecordID,
		entry.Action,
		nullString(entry.Detail),
		nullString(entry.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read activity entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// List retrieves entries matching the given filters, newest first.
func (r *ActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := `SELECT id, timestamp, profile, resource, record_id, action, detail, request_id FROM activity_log WHERE 1=1`
	args := []any{}

	if filters.Resource != "" {
		query += " AND resource = ?"
		args = append(args, filters.Resource)
	}

	if filters.RecordID != 0 {
		query += " AND record_id = ?"
		args = append(args, filters.RecordID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityRecord
	for rows.Next() {
		var (
			profile   sql.NullString
			detail    sql.NullString
			requestID sql.NullString
			timestamp time.Time
		)

		entry := &secondary.ActivityRecord{}
		err := rows.Scan(&entry.ID,
			&timestamp,
			&profile,
			&entry.Resource,
			&entry.RecordID,
			&entry.Action,
			&detail,
			&requestID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.Timestamp = timestamp.Format(time.RFC3339)
		entry.Profile = profile.String
		entry.Detail = detail.String
		entry.RequestID = requestID.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *ActivityRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM activity_log WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity log: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure ActivityRepository implements the interface
var _ secondary.ActivityRepository = (*ActivityRepository)(nil)
