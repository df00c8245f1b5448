package listing

import (
	"strings"

	"github.com/example/shipdesk/internal/models"
)

// Filter returns the records having at least one field whose display string
// contains query, ignoring case. Every field is searched, including the id,
// timestamps, numbers and booleans. Null fields never match. An empty query
// keeps every record. Input order is preserved and the input is not modified.
func Filter(records []models.Record, query string, reg *Registry) []models.Record {
	if query == "" {
		return append([]models.Record(nil), records...)
	}

	needle := strings.ToLower(query)
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if matches(r, needle, reg) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Record, needle string, reg *Registry) bool {
	for _, name := range r.FieldNames() {
		s, ok := reg.Stringifier(name)(r.Get(name))
		if ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
