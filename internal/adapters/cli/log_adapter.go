package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/shipdesk/internal/ports/primary"
)

// LogAdapter prints the local activity log.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{service: service, out: out}
}

// List prints log entries matching filters, oldest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) error {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list activity: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity recorded")
		return nil
	}

	// Oldest first, like a tail.
	for i := len(entries) - 1; i >= 0; i-- {
		a.printEntry(entries[i])
	}
	return nil
}

func (a *LogAdapter) printEntry(e *primary.LogEntry) {
	fmt.Fprintf(a.out, "%s | %-10s | %s %-6s | %s/%d",
		formatTimestamp(e.Timestamp), e.Profile, actionIcon(e.Action), e.Action, e.Resource, e.RecordID)
	if e.Detail != "" {
		fmt.Fprintf(a.out, " | %s", e.Detail)
	}
	fmt.Fprintln(a.out)
}

func actionIcon(action string) string {
	switch action {
	case "create":
		return "+"
	case "update":
		return "~"
	case "delete":
		return "-"
	case "email":
		return "@"
	default:
		return "?"
	}
}

func formatTimestamp(ts string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Local().Format("2006-01-02 15:04:05")
		}
	}
	return ts
}

// Prune deletes entries older than days and reports how many went.
func (a *LogAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to prune activity: %w", err)
	}
	successColor.Fprintf(a.out, "✓ Pruned %d activity entries older than %d days\n", n, days)
	return nil
}
