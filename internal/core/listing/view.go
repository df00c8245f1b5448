package listing

import "github.com/example/shipdesk/internal/models"

// Default view settings
const (
	DefaultSortField = models.FieldCreatedAt
	DefaultPageSize  = 10
)

// View is the ephemeral state controlling which rows are displayed.
// It is a value type: reducers return a new View and never modify their input.
type View struct {
	Query      string
	SortField  string
	Descending bool
	Page       int
	PageSize   int
}

// DefaultView returns the initial view: newest records first, page 1.
// A pageSize below 1 falls back to DefaultPageSize.
func DefaultView(pageSize int) View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return View{
		SortField:  DefaultSortField,
		Descending: true,
		Page:       1,
		PageSize:   pageSize,
	}
}

// ApplyFilter sets the search query and resets to page 1.
func ApplyFilter(v View, query string) View {
	v.Query = query
	v.Page = 1
	return v
}

// ApplySort handles a click on a column: the current field toggles direction,
// a different field sorts ascending. Either way the view returns to page 1.
func ApplySort(v View, field string) View {
	if field == v.SortField {
		v.Descending = !v.Descending
	} else {
		v.SortField = field
		v.Descending = false
	}
	v.Page = 1
	return v
}

// ApplySortDirection sets field and direction explicitly and resets to page 1.
func ApplySortDirection(v View, field string, descending bool) View {
	v.SortField = field
	v.Descending = descending
	v.Page = 1
	return v
}

// ApplyPage moves to page. Pages below 1 clamp to 1; pages past the end are kept
// and produce an empty window.
func ApplyPage(v View, page int) View {
	if page < 1 {
		page = 1
	}
	v.Page = page
	return v
}

// ApplyPageSize changes the rows per page and resets to page 1. Sizes below 1 are ignored.
func ApplyPageSize(v View, size int) View {
	if size < 1 {
		return v
	}
	v.PageSize = size
	v.Page = 1
	return v
}

// Window is the projection of a collection through a View.
type Window struct {
	Rows       []models.Record
	Page       int
	PageSize   int
	TotalPages int
	Matched    int // records passing the filter
	Total      int // records in the collection
}

// Project filters, sorts and pages records according to v.
func Project(records []models.Record, v View, reg *Registry) Window {
	filtered := Filter(records, v.Query, reg)
	sorted := Sort(filtered, v.SortField, v.Descending, reg)
	return Window{
		Rows:       Paginate(sorted, v.Page, v.PageSize),
		Page:       v.Page,
		PageSize:   v.PageSize,
		TotalPages: TotalPages(len(filtered), v.PageSize),
		Matched:    len(filtered),
		Total:      len(records),
	}
}

// IDs returns the ids of the rows in the window, in display order.
func (w Window) IDs() []int64 {
	ids := make([]int64, len(w.Rows))
	for i, r := range w.Rows {
		ids[i] = r.ID
	}
	return ids
}
