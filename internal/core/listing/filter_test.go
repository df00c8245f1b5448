package listing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/shipdesk/internal/models"
)

func filterFixture() []models.Record {
	return []models.Record{
		rec(1, map[string]models.Value{"city": models.Text("Chicago, IL"), "weight": models.Number(1200)}),
		rec(2, map[string]models.Value{"city": models.Text("Denver, CO"), "tarp": models.Bool(true)}),
		rec(3, map[string]models.Value{"city": models.Null(), "notes": models.Note("call before CHICAGO drop")}),
		rec(4, map[string]models.Value{"weight": models.Number(12.5)}),
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"empty query keeps all", "", []int64{1, 2, 3, 4}},
		{"case insensitive substring", "chicago", []int64{1, 3}},
		{"numbers stringified", "12", []int64{1, 4}},
		{"decimal number", "12.5", []int64{4}},
		{"booleans stringified", "true", []int64{2}},
		{"other text field", "denver", []int64{2}},
		{"no matches", "zzz", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(filterFixture(), tt.query, testRegistry()))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilter_NullNeverMatches(t *testing.T) {
	records := []models.Record{
		rec(10, map[string]models.Value{"city": models.Null()}),
		rec(11, map[string]models.Value{"city": models.Null(), "notes": models.Note("null route")}),
	}
	got := ids(Filter(records, "null", testRegistry()))
	if diff := cmp.Diff([]int64{11}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_NumberMatchesReceivedText(t *testing.T) {
	records := []models.Record{
		rec(20, map[string]models.Value{"weight": models.NumberText(1500, "1500.00")}),
		rec(21, map[string]models.Value{"weight": models.Number(1500)}),
	}
	got := ids(Filter(records, "1500.00", testRegistry()))
	if diff := cmp.Diff([]int64{20}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_SubsequenceProperty(t *testing.T) {
	records := filterFixture()
	reg := testRegistry()
	for _, q := range []string{"", "c", "CO", "1", "o", "before"} {
		got := Filter(records, q, reg)

		// Retained records appear in input order.
		pos := 0
		for _, r := range got {
			for pos < len(records) && records[pos].ID != r.ID {
				pos++
			}
			if pos == len(records) {
				t.Fatalf("Filter(%q) is not a subsequence of the input", q)
			}
		}

		for _, r := range got {
			if !matches(r, strings.ToLower(q), reg) && q != "" {
				t.Errorf("Filter(%q) kept non-matching record %d", q, r.ID)
			}
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	records := filterFixture()
	before := ids(records)
	_ = Filter(records, "denver", testRegistry())
	if diff := cmp.Diff(before, ids(records)); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}
