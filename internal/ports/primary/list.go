// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/shipdesk/internal/core/listing"
	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/models"
)

// ListService defines the primary port of the record table controller.
// Renderers read Snapshot and send user intents back through the other methods.
type ListService interface {
	// Schema returns the schema of the managed resource.
	Schema() *schema.Schema

	// Load replaces the collection with the server's.
	Load(ctx context.Context) error

	// Snapshot returns the current window, selection and dialog state.
	Snapshot() Snapshot

	// Search sets the free-text query and returns to page 1.
	Search(query string)

	// SortBy toggles direction on the current field or sorts a new field ascending.
	SortBy(field string)

	// SetSort sets the sort field and direction explicitly.
	SetSort(field string, descending bool)

	// ChangePage moves to a 1-indexed page.
	ChangePage(page int)

	// SetPageSize changes the rows per page.
	SetPageSize(size int)

	// ToggleSelect flips the selection of one record.
	ToggleSelect(id int64) error

	// ToggleSelectAll selects or deselects every visible row.
	ToggleSelectAll()

	// Lookup returns a copy of the record with the given id.
	Lookup(id int64) (models.Record, error)

	// Save creates the record when its id is 0 and updates it otherwise.
	Save(ctx context.Context, record models.Record) (models.Record, error)

	// Create submits a new record and appends the server's copy.
	Create(ctx context.Context, record models.Record) (models.Record, error)

	// Update submits changes and merges the server's copy into the collection.
	Update(ctx context.Context, record models.Record) (models.Record, error)

	// Delete removes one record.
	Delete(ctx context.Context, id int64) error

	// DeleteSelected removes every selected record after confirmation.
	DeleteSelected(ctx context.Context, confirm ConfirmFunc) (*DeleteResult, error)

	// SendEmails sends one message about the selected records.
	SendEmails(ctx context.Context, draft listing.EmailDraft) error

	// OpenDialog opens a record dialog. id is ignored for the add and email dialogs.
	OpenDialog(kind listing.DialogKind, id int64) error

	// CloseDialog closes the open dialog.
	CloseDialog()

	// SetEmailDraft stores the message being composed.
	SetEmailDraft(draft listing.EmailDraft)
}

// ConfirmFunc asks the user to confirm deleting count records.
type ConfirmFunc func(ctx context.Context, count int) (bool, error)

// DeleteResult describes a bulk delete that was confirmed (or cancelled).
type DeleteResult struct {
	Deleted   []int64
	Cancelled bool
}

// Row is one visible record with its selection state.
type Row struct {
	Record   models.Record
	Selected bool
}

// Snapshot is the rendered state of the table.
type Snapshot struct {
	Resource           string
	Rows               []Row
	Query              string
	SortField          string
	Descending         bool
	Page               int
	PageSize           int
	TotalPages         int
	Matched            int
	Total              int
	Selected           []int64
	AllVisibleSelected bool
	Loading            bool
	Ready              bool
	Dialog             listing.Dialog
}
