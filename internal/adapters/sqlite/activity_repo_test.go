package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shipdesk/internal/adapters/sqlite"
	"github.com/example/shipdesk/internal/ctxutil"
	"github.com/example/shipdesk/internal/ports/secondary"
)

func TestActivityRepository_CreateAndList(t *testing.T) {
	repo := sqlite.NewActivityRepository(setupTestDB(t))
	ctx := context.Background()

	entry := &secondary.ActivityRecord{
		Profile:   "default",
		Resource:  "shipment",
		RecordID:  42,
		Action:    "create",
		RequestID: "req-1",
	}
	require.NoError(t, repo.Create(ctx, entry))
	assert.NotZero(t, entry.ID)

	require.NoError(t, repo.Create(ctx, &secondary.ActivityRecord{Resource: "quote", RecordID: 7, Action: "email", Detail: "Rates"}))

	all, err := repo.List(ctx, secondary.ActivityFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	shipments, err := repo.List(ctx, secondary.ActivityFilters{Resource: "shipment"})
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	got := shipments[0]
	assert.Equal(t, int64(42), got.RecordID)
	assert.Equal(t, "default", got.Profile)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Empty(t, got.Detail)
	assert.NotEmpty(t, got.Timestamp)
}

func TestActivityRepository_ListFiltersAndOrder(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewActivityRepository(testDB)
	seedActivity(t, testDB, "shipment", 1, "create", "2026-01-01 10:00:00")
	seedActivity(t, testDB, "shipment", 1, "update", "2026-01-02 10:00:00")
	seedActivity(t, testDB, "shipment", 2, "delete", "2026-01-03 10:00:00")
	seedActivity(t, testDB, "quote", 1, "create", "2026-01-04 10:00:00")

	tests := []struct {
		name    string
		filters secondary.ActivityFilters
		want    []string
	}{
		{"newest first", secondary.ActivityFilters{}, []string{"create", "delete", "update", "create"}},
		{"one record", secondary.ActivityFilters{Resource: "shipment", RecordID: 1}, []string{"update", "create"}},
		{"by action", secondary.ActivityFilters{Action: "delete"}, []string{"delete"}},
		{"limit", secondary.ActivityFilters{Limit: 2}, []string{"create", "delete"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.List(context.Background(), tt.filters)
			require.NoError(t, err)
			actions := make([]string, len(entries))
			for i, e := range entries {
				actions[i] = e.Action
			}
			assert.Equal(t, tt.want, actions)
		})
	}
}

func TestActivityRepository_RejectsUnknownAction(t *testing.T) {
	repo := sqlite.NewActivityRepository(setupTestDB(t))
	err := repo.Create(context.Background(), &secondary.ActivityRecord{Resource: "shipment", RecordID: 1, Action: "archive"})
	assert.Error(t, err)
}

func TestActivityRepository_PruneOlderThan(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewActivityRepository(testDB)
	seedActivity(t, testDB, "shipment", 1, "create", "2000-01-01 00:00:00")
	seedActivity(t, testDB, "shipment", 2, "create", "2000-06-01 00:00:00")
	require.NoError(t, repo.Create(context.Background(), &secondary.ActivityRecord{Resource: "shipment", RecordID: 3, Action: "create"}))

	n, err := repo.PruneOlderThan(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := repo.List(context.Background(), secondary.ActivityFilters{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, int64(3), left[0].RecordID)
}

func TestLogWriterAdapter(t *testing.T) {
	repo := sqlite.NewActivityRepository(setupTestDB(t))
	writer := sqlite.NewLogWriterAdapter(repo)

	ctx := ctxutil.WithProfile(context.Background(), "work")
	ctx = ctxutil.WithRequestID(ctx, "req-9")

	require.NoError(t, writer.LogCreate(ctx, "shipment", 1))
	require.NoError(t, writer.LogUpdate(ctx, "shipment", 1, []string{"ship_price", "ship_weight"}))
	require.NoError(t, writer.LogDelete(ctx, "quote", 5))
	require.NoError(t, writer.LogEmail(ctx, "quote", []int64{5, 6}, "Rates"))

	entries, err := repo.List(context.Background(), secondary.ActivityFilters{})
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for _, e := range entries {
		assert.Equal(t, "work", e.Profile)
		assert.Equal(t, "req-9", e.RequestID)
	}

	updates, err := repo.List(context.Background(), secondary.ActivityFilters{Action: "update"})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "ship_price,ship_weight", updates[0].Detail)

	emails, err := repo.List(context.Background(), secondary.ActivityFilters{Action: "email", RecordID: 6})
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "Rates [5,6]", emails[0].Detail)
}
