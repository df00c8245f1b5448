package listing

import "slices"

// Selection is the set of record ids marked for bulk action, in the order they
// were selected. It is a value type; every operation returns a new Selection.
type Selection struct {
	ids []int64
}

// NewSelection returns a selection holding ids, ignoring duplicates.
func NewSelection(ids ...int64) Selection {
	var s Selection
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id int64) bool {
	return slices.Contains(s.ids, id)
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the selected ids.
func (s Selection) IDs() []int64 {
	return slices.Clone(s.ids)
}

// Toggle flips the membership of id.
func (s Selection) Toggle(id int64) Selection {
	if s.Has(id) {
		return s.Without(id)
	}
	return Selection{ids: append(slices.Clone(s.ids), id)}
}

// ToggleAll applies select-all to the visible ids: when every visible id is already
// selected they are all deselected, otherwise the missing ones are added. Ids outside
// visible are never touched. An empty window leaves the selection unchanged.
func (s Selection) ToggleAll(visible []int64) Selection {
	if len(visible) == 0 {
		return s
	}
	if s.HasAll(visible) {
		return s.Without(visible...)
	}
	out := Selection{ids: slices.Clone(s.ids)}
	for _, id := range visible {
		if !out.Has(id) {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

// HasAll reports whether every id in ids is selected.
func (s Selection) HasAll(ids []int64) bool {
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Without returns the selection minus ids.
func (s Selection) Without(ids ...int64) Selection {
	out := Selection{ids: make([]int64, 0, len(s.ids))}
	for _, id := range s.ids {
		if !slices.Contains(ids, id) {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

// Retain keeps only the ids for which exists returns true.
func (s Selection) Retain(exists func(id int64) bool) Selection {
	out := Selection{ids: make([]int64, 0, len(s.ids))}
	for _, id := range s.ids {
		if exists(id) {
			out.ids = append(out.ids, id)
		}
	}
	return out
}
