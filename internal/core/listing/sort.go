package listing

import (
	"slices"

	"github.com/example/shipdesk/internal/models"
)

// Sort returns a copy of records ordered by field. Descending reverses the
// comparator; ties keep their input order in both directions.
func Sort(records []models.Record, field string, descending bool, reg *Registry) []models.Record {
	out := append([]models.Record(nil), records...)
	if field == "" {
		return out
	}

	compare := reg.Ops(field).Compare
	slices.SortStableFunc(out, func(a, b models.Record) int {
		c := compare(a.Get(field), b.Get(field))
		if descending {
			return -c
		}
		return c
	})
	return out
}
