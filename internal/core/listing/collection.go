package listing

import "github.com/example/shipdesk/internal/models"

// Replace returns a copy of records with duplicate non-zero ids collapsed to their
// first occurrence. The dropped ids are returned so callers can report them.
func Replace(records []models.Record) ([]models.Record, []int64) {
	out := make([]models.Record, 0, len(records))
	seen := make(map[int64]bool, len(records))
	var dropped []int64
	for _, r := range records {
		if r.ID != 0 && seen[r.ID] {
			dropped = append(dropped, r.ID)
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out, dropped
}

// IndexOf returns the position of id in records, or -1.
func IndexOf(records []models.Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Append adds a created record to the end of the collection. A record whose id is
// already present replaces that entry in place, keeping ids unique.
func Append(records []models.Record, created models.Record) []models.Record {
	out := append([]models.Record(nil), records...)
	if i := IndexOf(out, created.ID); i >= 0 {
		out[i] = created
		return out
	}
	return append(out, created)
}

// MergeUpdate overlays update onto the entry with the same id. It reports false,
// and returns records unchanged, when no entry matches.
func MergeUpdate(records []models.Record, update models.Record) ([]models.Record, bool) {
	i := IndexOf(records, update.ID)
	if i < 0 {
		return records, false
	}
	out := append([]models.Record(nil), records...)
	out[i] = out[i].Merge(update)
	return out, true
}

// RemoveIDs returns the collection without the given ids.
func RemoveIDs(records []models.Record, ids ...int64) []models.Record {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !drop[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
