package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/core/listing"
	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/ctxutil"
	"github.com/example/shipdesk/internal/models"
	"github.com/example/shipdesk/internal/ports/primary"
	"github.com/example/shipdesk/internal/ports/secondary"
)

// ListControllerOptions tunes a ListController. Zero values select the defaults.
type ListControllerOptions struct {
	PageSize int
	// RequestTimeout bounds every remote call. Zero disables the bound.
	RequestTimeout time.Duration
	// DeleteConcurrency caps in-flight deletes during a bulk delete. Zero means one per id.
	DeleteConcurrency int
	Locale            language.Tag
	Logger            *zap.Logger
	Activity          secondary.LogWriter
}

// ListController owns one resource's in-memory collection and the view over it.
// All state is guarded by mu, which is never held across a remote call: each
// mutation is applied once, after the server has confirmed it.
type ListController struct {
	schema   *schema.Schema
	remote   secondary.RecordService
	auth     AuthContext
	registry *listing.Registry
	logger   *zap.Logger
	activity secondary.LogWriter
	timeout  time.Duration
	fanout   int

	mu         sync.Mutex
	collection []models.Record
	selection  listing.Selection
	view       listing.View
	dialog     listing.Dialog
	loads      int
	ready      bool
}

// NewListController creates a controller for the resource described by s.
// The collection starts empty; callers run Load right after construction.
func NewListController(s *schema.Schema, remote secondary.RecordService, auth AuthContext, opts ListControllerOptions) *ListController {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	locale := opts.Locale
	if locale == language.Und {
		locale = language.AmericanEnglish
	}
	return &ListController{
		schema:   s,
		remote:   remote,
		auth:     auth,
		registry: listing.NewRegistry(s, locale),
		logger:   logger.With(zap.String("resource", s.Resource)),
		activity: opts.Activity,
		timeout:  opts.RequestTimeout,
		fanout:   opts.DeleteConcurrency,
		view:     listing.DefaultView(opts.PageSize),
	}
}

// Schema returns the schema of the managed resource.
func (c *ListController) Schema() *schema.Schema {
	return c.schema
}

// ============================================================================
// Fetch/Sync
// ============================================================================

// Load fetches the full collection and replaces the local one verbatim. On failure
// the previous collection is kept and the error wraps ErrUnauthenticated,
// ErrUnauthorized or ErrNetworkOrServer.
func (c *ListController) Load(ctx context.Context) error {
	ctx, err := c.session(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loads--
		c.mu.Unlock()
	}()

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	records, err := c.remote.List(reqCtx)
	if err != nil {
		err = c.remoteFailure(ctx, "load", err)
		return fmt.Errorf("failed to load %s: %w", c.schema.Resource, err)
	}

	normalized := make([]models.Record, len(records))
	for i, r := range records {
		normalized[i] = c.schema.Normalize(r)
	}
	collection, dropped := listing.Replace(normalized)
	if len(dropped) > 0 {
		c.logger.Warn("server returned duplicate ids", zap.Int64s("ids", dropped))
	}

	c.mu.Lock()
	c.collection = collection
	c.selection = c.selection.Retain(c.existsLocked)
	c.ready = true
	c.mu.Unlock()

	c.logger.Info("collection loaded", zap.Int("records", len(collection)))
	return nil
}

// ============================================================================
// View state
// ============================================================================

// Snapshot returns the visible window and its selection state.
func (c *ListController) Snapshot() primary.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := listing.Project(c.collection, c.view, c.registry)
	rows := make([]primary.Row, len(window.Rows))
	for i, r := range window.Rows {
		rows[i] = primary.Row{Record: r, Selected: c.selection.Has(r.ID)}
	}
	visible := window.IDs()

	return primary.Snapshot{
		Resource:           c.schema.Resource,
		Rows:               rows,
		Query:              c.view.Query,
		SortField:          c.view.SortField,
		Descending:         c.view.Descending,
		Page:               window.Page,
		PageSize:           window.PageSize,
		TotalPages:         window.TotalPages,
		Matched:            window.Matched,
		Total:              window.Total,
		Selected:           c.selection.IDs(),
		AllVisibleSelected: len(visible) > 0 && c.selection.HasAll(visible),
		Loading:            c.loads > 0,
		Ready:              c.ready,
		Dialog:             c.dialog,
	}
}

// Search sets the query and returns to page 1.
func (c *ListController) Search(query string) {
	c.mu.Lock()
	c.view = listing.ApplyFilter(c.view, query)
	c.mu.Unlock()
}

// SortBy toggles the direction of the current sort field, or sorts a new field ascending.
func (c *ListController) SortBy(field string) {
	c.mu.Lock()
	c.view = listing.ApplySort(c.view, field)
	c.mu.Unlock()
}

// SetSort sets field and direction explicitly.
func (c *ListController) SetSort(field string, descending bool) {
	c.mu.Lock()
	c.view = listing.ApplySortDirection(c.view, field, descending)
	c.mu.Unlock()
}

// ChangePage moves to page. Pages past the end show an empty window.
func (c *ListController) ChangePage(page int) {
	c.mu.Lock()
	c.view = listing.ApplyPage(c.view, page)
	c.mu.Unlock()
}

// SetPageSize changes rows per page and returns to page 1.
func (c *ListController) SetPageSize(size int) {
	c.mu.Lock()
	c.view = listing.ApplyPageSize(c.view, size)
	c.mu.Unlock()
}

// ============================================================================
// Selection
// ============================================================================

// ToggleSelect flips the selection of id. Unknown ids return ErrNotFound.
func (c *ListController) ToggleSelect(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.existsLocked(id) {
		return fmt.Errorf("%s %d: %w", c.schema.Resource, id, domainerr.ErrNotFound)
	}
	c.selection = c.selection.Toggle(id)
	return nil
}

// ToggleSelectAll deselects the visible rows when all of them are selected and
// selects them otherwise. Selections on other pages are kept.
func (c *ListController) ToggleSelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := listing.Project(c.collection, c.view, c.registry)
	c.selection = c.selection.ToggleAll(window.IDs())
}

// Lookup returns a copy of the record with the given id.
func (c *ListController) Lookup(id int64) (models.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := listing.IndexOf(c.collection, id)
	if i < 0 {
		return models.Record{}, fmt.Errorf("%s %d: %w", c.schema.Resource, id, domainerr.ErrNotFound)
	}
	return c.collection[i].Clone(), nil
}

// ============================================================================
// Dialogs
// ============================================================================

// OpenDialog opens a dialog. View and edit target an existing record; add starts
// from a blank record; email requires a selection.
func (c *ListController) OpenDialog(kind listing.DialogKind, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var target models.Record
	switch kind {
	case listing.DialogView, listing.DialogEdit:
		i := listing.IndexOf(c.collection, id)
		if i < 0 {
			return fmt.Errorf("%s %d: %w", c.schema.Resource, id, domainerr.ErrNotFound)
		}
		target = c.collection[i]
	case listing.DialogAdd:
		target = c.schema.Blank()
	case listing.DialogEmail:
		if c.selection.Len() == 0 {
			return domainerr.ErrNoSelection
		}
	case listing.DialogNone:
		c.dialog = listing.CloseDialog(c.dialog)
		return nil
	}
	c.dialog = listing.OpenDialog(c.dialog, kind, target)
	return nil
}

// CloseDialog closes the open dialog.
func (c *ListController) CloseDialog() {
	c.mu.Lock()
	c.dialog = listing.CloseDialog(c.dialog)
	c.mu.Unlock()
}

// SetEmailDraft stores the message being composed.
func (c *ListController) SetEmailDraft(draft listing.EmailDraft) {
	c.mu.Lock()
	c.dialog = listing.ApplyEmailDraft(c.dialog, draft)
	c.mu.Unlock()
}

// ============================================================================
// CRUD reconciliation
// ============================================================================

// Save routes to Create for unpersisted records and to Update otherwise.
func (c *ListController) Save(ctx context.Context, record models.Record) (models.Record, error) {
	if record.ID == 0 {
		return c.Create(ctx, record)
	}
	return c.Update(ctx, record)
}

// Create validates and submits record, then appends the server's copy. The
// collection is not reloaded.
func (c *ListController) Create(ctx context.Context, record models.Record) (models.Record, error) {
	record = record.Clone()
	record.ID, record.CreatedAt, record.UpdatedAt = 0, "", ""
	if err := c.schema.Validate(record, schema.OpCreate); err != nil {
		return models.Record{}, err
	}

	ctx, err := c.session(ctx)
	if err != nil {
		return models.Record{}, err
	}
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	created, err := c.remote.Create(reqCtx, record)
	if err != nil {
		err = c.remoteFailure(ctx, "create", err)
		return models.Record{}, fmt.Errorf("failed to create %s: %w", c.schema.Resource, err)
	}
	if created.ID <= 0 {
		return models.Record{}, fmt.Errorf("failed to create %s: %w: response has no id", c.schema.Resource, domainerr.ErrNetworkOrServer)
	}
	created = c.schema.Normalize(created)

	c.mu.Lock()
	c.collection = listing.Append(c.collection, created)
	if c.dialog.Kind == listing.DialogAdd {
		c.dialog = listing.CloseDialog(c.dialog)
	}
	c.mu.Unlock()

	c.logger.Info("record created", zap.Int64("id", created.ID))
	c.logActivity(ctx, func(w secondary.LogWriter) error {
		return w.LogCreate(ctx, c.schema.Resource, created.ID)
	})
	return created.Clone(), nil
}

// Update validates and submits record, then overlays the server's copy onto the
// local entry. The id never changes.
func (c *ListController) Update(ctx context.Context, record models.Record) (models.Record, error) {
	record = record.Clone()
	if err := c.schema.Validate(record, schema.OpUpdate); err != nil {
		return models.Record{}, err
	}

	c.mu.Lock()
	exists := c.existsLocked(record.ID)
	c.mu.Unlock()
	if !exists {
		return models.Record{}, fmt.Errorf("%s %d: %w", c.schema.Resource, record.ID, domainerr.ErrNotFound)
	}

	ctx, err := c.session(ctx)
	if err != nil {
		return models.Record{}, err
	}
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	returned, err := c.remote.Update(reqCtx, record)
	if err != nil {
		err = c.remoteFailure(ctx, "update", err)
		return models.Record{}, fmt.Errorf("failed to update %s %d: %w", c.schema.Resource, record.ID, err)
	}
	returned = c.schema.Normalize(returned)
	returned.ID = record.ID

	c.mu.Lock()
	var merged models.Record
	if updated, ok := listing.MergeUpdate(c.collection, returned); ok {
		c.collection = updated
		merged = updated[listing.IndexOf(updated, record.ID)]
	} else {
		// Deleted while the update was in flight; nothing left to merge into.
		merged = returned
	}
	if c.dialog.Kind == listing.DialogEdit && c.dialog.Record.ID == record.ID {
		c.dialog = listing.CloseDialog(c.dialog)
	}
	c.mu.Unlock()

	c.logger.Info("record updated", zap.Int64("id", record.ID))
	c.logActivity(ctx, func(w secondary.LogWriter) error {
		return w.LogUpdate(ctx, c.schema.Resource, record.ID, domainFieldNames(record))
	})
	return merged.Clone(), nil
}

// Delete removes one record on the server and then locally. A 404 from the
// server counts as deleted.
func (c *ListController) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	exists := c.existsLocked(id)
	c.mu.Unlock()
	if !exists {
		return fmt.Errorf("%s %d: %w", c.schema.Resource, id, domainerr.ErrNotFound)
	}

	ctx, err := c.session(ctx)
	if err != nil {
		return err
	}
	if err := c.deleteOne(ctx, id); err != nil {
		err = c.remoteFailure(ctx, "delete", err)
		return fmt.Errorf("failed to delete %s %d: %w", c.schema.Resource, id, err)
	}

	c.removeLocal(ctx, []int64{id})
	return nil
}

// DeleteSelected deletes every selected record. An empty selection returns
// ErrNoSelection without prompting. confirm must approve before any request is
// sent. Deletes run concurrently; only ids the server confirmed are removed from
// the collection and the selection. If any request fails the result lists the
// confirmed ids and the error is a *errors.BulkDeleteError.
func (c *ListController) DeleteSelected(ctx context.Context, confirm primary.ConfirmFunc) (*primary.DeleteResult, error) {
	c.mu.Lock()
	ids := c.selection.IDs()
	c.mu.Unlock()

	if len(ids) == 0 {
		c.logger.Warn("bulk delete with empty selection")
		return nil, domainerr.ErrNoSelection
	}

	if confirm == nil {
		return nil, errors.New("bulk delete requires confirmation")
	}
	ok, err := confirm(ctx, len(ids))
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return &primary.DeleteResult{Cancelled: true}, nil
	}

	ctx, err = c.session(ctx)
	if err != nil {
		return nil, err
	}

	var (
		outcomeMu sync.Mutex
		outcomes  = make(map[int64]error, len(ids))
	)
	g := new(errgroup.Group)
	if c.fanout > 0 {
		g.SetLimit(c.fanout)
	}
	for _, id := range ids {
		g.Go(func() error {
			err := c.deleteOne(ctx, id)
			outcomeMu.Lock()
			outcomes[id] = err
			outcomeMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var deleted []int64
	failed := make(map[int64]error)
	for _, id := range ids {
		if err := outcomes[id]; err != nil {
			failed[id] = classify(err)
			c.logger.Warn("delete failed", zap.Int64("id", id), zap.Error(err))
			continue
		}
		deleted = append(deleted, id)
	}

	c.removeLocal(ctx, deleted)
	result := &primary.DeleteResult{Deleted: deleted}

	if len(failed) > 0 {
		bulkErr := &domainerr.BulkDeleteError{Deleted: deleted, Failed: failed}
		if errors.Is(bulkErr, domainerr.ErrUnauthorized) {
			c.auth.unauthorized(ctx)
		}
		return result, bulkErr
	}
	return result, nil
}

// SendEmails sends one message about the selected records. The collection is
// untouched. On success the selection is cleared and the email dialog closes;
// on failure both are kept so the user can retry.
func (c *ListController) SendEmails(ctx context.Context, draft listing.EmailDraft) error {
	c.mu.Lock()
	ids := c.selection.IDs()
	c.mu.Unlock()

	if len(ids) == 0 {
		c.logger.Warn("bulk email with empty selection")
		return domainerr.ErrNoSelection
	}
	if draft.Subject == "" {
		return &domainerr.ValidationError{Fields: []domainerr.FieldError{{Field: "subject", Message: "is required"}}}
	}

	ctx, err := c.session(ctx)
	if err != nil {
		return err
	}
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	err = c.remote.SendEmail(reqCtx, secondary.EmailRequest{
		IDs:     ids,
		Subject: draft.Subject,
		Content: draft.Content,
		Module:  c.schema.Module,
	})
	if err != nil {
		err = c.remoteFailure(ctx, "email", err)
		return fmt.Errorf("failed to send emails: %w", err)
	}

	c.mu.Lock()
	c.selection = c.selection.Without(ids...)
	if c.dialog.Kind == listing.DialogEmail {
		c.dialog = listing.CloseDialog(c.dialog)
		c.dialog.Email = listing.EmailDraft{}
	}
	c.mu.Unlock()

	c.logger.Info("emails sent", zap.Int("records", len(ids)))
	c.logActivity(ctx, func(w secondary.LogWriter) error {
		return w.LogEmail(ctx, c.schema.Resource, ids, draft.Subject)
	})
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

// session resolves the credential and tags ctx for the remote calls of one user
// action. A missing token fails before any request is built.
func (c *ListController) session(ctx context.Context) (context.Context, error) {
	token, err := c.auth.token(ctx)
	if err != nil {
		return ctx, err
	}
	if token == "" {
		return ctx, domainerr.ErrUnauthenticated
	}
	ctx = ctxutil.WithToken(ctx, token)
	if c.auth.Profile != "" {
		ctx = ctxutil.WithProfile(ctx, c.auth.Profile)
	}
	// One request id per user action; a bulk delete shares it across its requests.
	if ctxutil.RequestIDFromContext(ctx) == "" {
		ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	}
	return ctx, nil
}

// requestContext applies the request timeout.
func (c *ListController) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *ListController) deleteOne(ctx context.Context, id int64) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	err := c.remote.Delete(reqCtx, id)
	if errors.Is(err, domainerr.ErrNotFound) {
		return nil
	}
	return err
}

// removeLocal drops confirmed deletions from the collection and the selection.
func (c *ListController) removeLocal(ctx context.Context, ids []int64) {
	if len(ids) == 0 {
		return
	}
	c.mu.Lock()
	c.collection = listing.RemoveIDs(c.collection, ids...)
	c.selection = c.selection.Without(ids...)
	if c.dialog.Kind == listing.DialogView || c.dialog.Kind == listing.DialogEdit {
		for _, id := range ids {
			if c.dialog.Record.ID == id {
				c.dialog = listing.CloseDialog(c.dialog)
				break
			}
		}
	}
	c.mu.Unlock()

	c.logger.Info("records deleted", zap.Int64s("ids", ids))
	for _, id := range ids {
		c.logActivity(ctx, func(w secondary.LogWriter) error {
			return w.LogDelete(ctx, c.schema.Resource, id)
		})
	}
}

// remoteFailure classifies err, logs it and fires the unauthorized hook when needed.
func (c *ListController) remoteFailure(ctx context.Context, op string, err error) error {
	err = classify(err)
	c.logger.Error("remote call failed", zap.String("op", op), zap.Error(err))
	if errors.Is(err, domainerr.ErrUnauthorized) {
		c.auth.unauthorized(ctx)
	}
	return err
}

// classify makes sure every remote failure carries one of the taxonomy sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, domainerr.ErrUnauthenticated),
		errors.Is(err, domainerr.ErrUnauthorized),
		errors.Is(err, domainerr.ErrNetworkOrServer),
		errors.Is(err, domainerr.ErrNotFound):
		return err
	}
	return fmt.Errorf("%w: %w", domainerr.ErrNetworkOrServer, err)
}

func (c *ListController) logActivity(ctx context.Context, write func(w secondary.LogWriter) error) {
	if c.activity == nil {
		return
	}
	if err := write(c.activity); err != nil {
		c.logger.Warn("failed to write activity log", zap.Error(err))
	}
}

// existsLocked reports whether id is in the collection. Callers hold mu.
func (c *ListController) existsLocked(id int64) bool {
	return listing.IndexOf(c.collection, id) >= 0
}

func domainFieldNames(r models.Record) []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ensure ListController implements the interface
var _ primary.ListService = (*ListController)(nil)
