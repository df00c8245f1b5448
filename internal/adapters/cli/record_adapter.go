// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing and output
// formatting, but delegate business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/core/listing"
	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/models"
	"github.com/example/shipdesk/internal/ports/primary"
)

// maxCellWidth truncates long values in the list table.
const maxCellWidth = 28

var (
	headerColor  = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
)

// RecordAdapter is a thin adapter that translates CLI operations to ListService calls.
// It depends only on the ListService interface, enabling easy testing with mocks.
type RecordAdapter struct {
	service primary.ListService
	out     io.Writer
}

// NewRecordAdapter creates a new RecordAdapter with the given service.
func NewRecordAdapter(service primary.ListService, out io.Writer) *RecordAdapter {
	return &RecordAdapter{
		service: service,
		out:     out,
	}
}

// ListOptions mirrors the list command flags.
type ListOptions struct {
	Search     string
	SortField  string
	Descending bool
	Page       int
	PerPage    int
}

// List loads the collection and prints one page of it.
func (a *RecordAdapter) List(ctx context.Context, opts ListOptions) error {
	s := a.service.Schema()
	if opts.SortField != "" {
		if _, ok := s.Field(opts.SortField); !ok {
			return fmt.Errorf("unknown %s field %q (see '%s fields')", s.Resource, opts.SortField, s.Resource)
		}
	}

	if err := a.service.Load(ctx); err != nil {
		return err
	}

	if opts.PerPage > 0 {
		a.service.SetPageSize(opts.PerPage)
	}
	if opts.SortField != "" {
		a.service.SetSort(opts.SortField, opts.Descending)
	}
	a.service.Search(opts.Search)
	if opts.Page > 1 {
		a.service.ChangePage(opts.Page)
	}

	snap := a.service.Snapshot()
	if snap.Matched == 0 {
		fmt.Fprintf(a.out, "No %s records found\n", s.Resource)
		return nil
	}

	a.renderTable(s, snap)
	return nil
}

func (a *RecordAdapter) renderTable(s *schema.Schema, snap primary.Snapshot) {
	cols := ListColumns(s)

	fmt.Fprintln(a.out)
	headerColor.Fprintf(a.out, "%s", s.Title)
	fmt.Fprintf(a.out, " (%d of %d, sorted by %s %s)\n", snap.Matched, snap.Total, snap.SortField, direction(snap.Descending))

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = strings.ToUpper(c.Label)
	}
	fmt.Fprintln(w, strings.Join(labels, "\t"))
	for _, row := range snap.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = FormatCell(row.Record.Get(c.Name))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	if len(snap.Rows) == 0 {
		fmt.Fprintln(a.out, "(no rows on this page)")
	}
	fmt.Fprintf(a.out, "\nPage %d of %d\n\n", snap.Page, max(snap.TotalPages, 1))
}

// ListColumns returns the columns shown in the list table: notes and structured
// fields are left to the show command.
func ListColumns(s *schema.Schema) []schema.Field {
	var cols []schema.Field
	for _, c := range s.Columns() {
		if c.Kind == models.KindNote || c.Kind == models.KindJSON || c.Name == models.FieldUpdatedAt {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// FormatCell renders a value for a table cell.
func FormatCell(v models.Value) string {
	var s string
	switch v.Kind {
	case models.KindNull:
		s = "-"
	case models.KindBool:
		if v.Bool {
			s = "yes"
		} else {
			s = "no"
		}
	default:
		s = strings.ReplaceAll(v.String(), "\n", " ")
	}
	if s == "" {
		s = "-"
	}
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-1]) + "…"
	}
	return s
}

func direction(descending bool) string {
	if descending {
		return "desc"
	}
	return "asc"
}

// Show prints every field of one record.
func (a *RecordAdapter) Show(ctx context.Context, id int64) error {
	if err := a.service.Load(ctx); err != nil {
		return err
	}
	record, err := a.service.Lookup(id)
	if err != nil {
		return err
	}

	s := a.service.Schema()
	fmt.Fprintf(a.out, "\n%s %d\n", strings.TrimSuffix(s.Title, "s"), record.ID)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, c := range s.Columns() {
		if c.Name == models.FieldID {
			continue
		}
		fmt.Fprintf(w, "%s:\t%s\n", c.Label, record.Get(c.Name).String())
	}
	w.Flush()
	fmt.Fprintln(a.out)
	return nil
}

// Create builds a record from field=value assignments and submits it.
func (a *RecordAdapter) Create(ctx context.Context, assignments []string) error {
	s := a.service.Schema()
	record := s.Blank()
	if err := Assign(s, &record, assignments); err != nil {
		return err
	}

	created, err := a.service.Create(ctx, record)
	if err != nil {
		return err
	}
	successColor.Fprintf(a.out, "✓ Created %s %d\n", s.Resource, created.ID)
	return nil
}

// Update applies field=value assignments to an existing record and submits it.
func (a *RecordAdapter) Update(ctx context.Context, id int64, assignments []string) error {
	if len(assignments) == 0 {
		return errors.New("nothing to update: pass at least one --set field=value")
	}
	if err := a.service.Load(ctx); err != nil {
		return err
	}
	record, err := a.service.Lookup(id)
	if err != nil {
		return err
	}

	s := a.service.Schema()
	if err := Assign(s, &record, assignments); err != nil {
		return err
	}
	if _, err := a.service.Update(ctx, record); err != nil {
		return err
	}
	successColor.Fprintf(a.out, "✓ Updated %s %d\n", s.Resource, id)
	return nil
}

// Delete selects ids and deletes them after confirmation.
func (a *RecordAdapter) Delete(ctx context.Context, ids []int64, confirm primary.ConfirmFunc) error {
	if err := a.selectIDs(ctx, ids); err != nil {
		return err
	}

	s := a.service.Schema()
	result, err := a.service.DeleteSelected(ctx, confirm)
	var bulkErr *domainerr.BulkDeleteError
	switch {
	case errors.As(err, &bulkErr):
		if len(bulkErr.Deleted) > 0 {
			successColor.Fprintf(a.out, "✓ Deleted %d %s record(s)\n", len(bulkErr.Deleted), s.Resource)
		}
		for _, id := range bulkErr.FailedIDs() {
			failColor.Fprintf(a.out, "✗ %s %d: %v\n", s.Resource, id, bulkErr.Failed[id])
		}
		return err
	case err != nil:
		return err
	case result.Cancelled:
		warnColor.Fprintln(a.out, "Cancelled, nothing deleted")
		return nil
	}
	successColor.Fprintf(a.out, "✓ Deleted %d %s record(s)\n", len(result.Deleted), s.Resource)
	return nil
}

// Email selects ids and sends one message about them.
func (a *RecordAdapter) Email(ctx context.Context, ids []int64, subject, content string) error {
	if err := a.selectIDs(ctx, ids); err != nil {
		return err
	}
	if err := a.service.SendEmails(ctx, listing.EmailDraft{Subject: subject, Content: content}); err != nil {
		return err
	}
	successColor.Fprintf(a.out, "✓ Sent email about %d %s record(s)\n", len(ids), a.service.Schema().Resource)
	return nil
}

// Fields prints the schema of the resource.
func (a *RecordAdapter) Fields() {
	PrintFields(a.out, a.service.Schema())
}

// PrintFields prints every field of s with its kind and validation rules.
func PrintFields(out io.Writer, s *schema.Schema) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tRULES")
	for _, f := range s.Columns() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Kind, rules(f))
	}
	w.Flush()
}

func rules(f schema.Field) string {
	var parts []string
	if models.IsReserved(f.Name) {
		parts = append(parts, "server-assigned")
	}
	if f.Required {
		parts = append(parts, "required")
	}
	if f.RequiredOnUpdate {
		parts = append(parts, "required on update")
	}
	if len(f.Options) > 0 {
		parts = append(parts, "one of "+strings.Join(f.Options, "|"))
	}
	if f.NonNegative {
		parts = append(parts, ">= 0")
	}
	if f.Kind == models.KindJSON {
		parts = append(parts, "JSON list")
	}
	if f.Kind == models.KindDate && !models.IsReserved(f.Name) {
		parts = append(parts, "YYYY-MM-DD")
	}
	return strings.Join(parts, ", ")
}

func (a *RecordAdapter) selectIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return domainerr.ErrNoSelection
	}
	if err := a.service.Load(ctx); err != nil {
		return err
	}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := a.service.ToggleSelect(id); err != nil {
			return err
		}
	}
	return nil
}

// Assign parses field=value pairs into record, collecting every failure into
// one ValidationError.
func Assign(s *schema.Schema, record *models.Record, assignments []string) error {
	var failures []domainerr.FieldError
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			failures = append(failures, domainerr.FieldError{Field: a, Message: "expected field=value"})
			continue
		}
		v, err := s.Parse(name, value)
		if err != nil {
			var verr *domainerr.ValidationError
			if errors.As(err, &verr) {
				failures = append(failures, verr.Fields...)
				continue
			}
			return err
		}
		record.Set(name, v)
	}
	if len(failures) > 0 {
		return &domainerr.ValidationError{Fields: failures}
	}
	return nil
}
