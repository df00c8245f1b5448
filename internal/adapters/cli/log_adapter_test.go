package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/shipdesk/internal/ports/primary"
)

// mockLogService implements primary.LogService for testing
type mockLogService struct {
	entries     []*primary.LogEntry
	err         error
	lastFilters primary.LogFilters
	lastDays    int
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}

func (m *mockLogService) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	m.lastDays = olderThanDays
	return 4, m.err
}

func TestLogAdapter_List(t *testing.T) {
	mock := &mockLogService{entries: []*primary.LogEntry{
		{ID: 2, Timestamp: "2024-05-02T10:00:00Z", Profile: "default", Resource: "quote", RecordID: 9, Action: "email", Detail: "Rates [9]"},
		{ID: 1, Timestamp: "2024-05-01T10:00:00Z", Profile: "default", Resource: "quote", RecordID: 9, Action: "create"},
	}}
	out := &bytes.Buffer{}
	adapter := NewLogAdapter(mock, out)

	filters := primary.LogFilters{Resource: "quote", Limit: 10}
	if err := adapter.List(context.Background(), filters); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastFilters != filters {
		t.Errorf("filters not passed through: %+v", mock.lastFilters)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.Contains(lines[0], "+ create") || !strings.Contains(lines[0], "quote/9") {
		t.Errorf("oldest entry should be first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "@ email") || !strings.Contains(lines[1], "Rates [9]") {
		t.Errorf("unexpected email line %q", lines[1])
	}
}

func TestLogAdapter_List_Empty(t *testing.T) {
	out := &bytes.Buffer{}
	adapter := NewLogAdapter(&mockLogService{}, out)

	if err := adapter.List(context.Background(), primary.LogFilters{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No activity recorded") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestLogAdapter_Prune(t *testing.T) {
	mock := &mockLogService{}
	out := &bytes.Buffer{}
	adapter := NewLogAdapter(mock, out)

	if err := adapter.Prune(context.Background(), 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastDays != 30 {
		t.Errorf("expected 30 days, got %d", mock.lastDays)
	}
	if !strings.Contains(out.String(), "Pruned 4 activity entries") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestLogAdapter_Prune_Error(t *testing.T) {
	adapter := NewLogAdapter(&mockLogService{err: errors.New("locked")}, &bytes.Buffer{})

	err := adapter.Prune(context.Background(), 30)
	if err == nil || !strings.Contains(err.Error(), "locked") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
