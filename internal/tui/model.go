// Package tui is the interactive record browser. It renders a ListService
// snapshot with bubbletea and sends key presses back as controller intents.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	cliadapter "github.com/example/shipdesk/internal/adapters/cli"
	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/core/listing"
	"github.com/example/shipdesk/internal/core/schema"
	"github.com/example/shipdesk/internal/ports/primary"
)

type mode int

const (
	modeTable mode = iota
	modeSearch
	modeConfirmDelete
	modeEmailSubject
	modeEmailContent
)

// Messages produced by the asynchronous remote commands.
type (
	loadedMsg  struct{ err error }
	deletedMsg struct {
		result *primary.DeleteResult
		err    error
	}
	emailedMsg struct {
		count int
		err   error
	}
)

const selectMark = "✓"

// Model is the bubbletea model of the record browser.
type Model struct {
	ctx     context.Context
	service primary.ListService
	schema  *schema.Schema
	columns []schema.Field

	table   table.Model
	search  textinput.Model
	subject textinput.Model
	content textinput.Model

	mode   mode
	busy   bool
	status string
	err    error
	width  int
	height int

	styles Styles
}

// New creates a browser over service. Remote calls use ctx.
func New(ctx context.Context, service primary.ListService) Model {
	s := service.Schema()
	fields := cliadapter.ListColumns(s)

	cols := []table.Column{{Title: " ", Width: 2}}
	for _, f := range fields {
		cols = append(cols, table.Column{Title: f.Label, Width: columnWidth(f)})
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	search := textinput.New()
	search.Placeholder = "Search every field..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 40

	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.CharLimit = 200
	subject.Width = 60

	content := textinput.New()
	content.Placeholder = "Message"
	content.CharLimit = 2000
	content.Width = 60

	return Model{
		ctx:     ctx,
		service: service,
		schema:  s,
		columns: fields,
		table:   t,
		search:  search,
		subject: subject,
		content: content,
		styles:  DefaultStyles(),
	}
}

func columnWidth(f schema.Field) int {
	w := len(f.Label) + 2
	switch {
	case w < 8:
		return 8
	case w > 20:
		return 20
	}
	return w
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, service primary.ListService) error {
	_, err := tea.NewProgram(New(ctx, service), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Init loads the collection.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.service.Load(m.ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(max(msg.Height-12, 3))
		return m, nil

	case loadedMsg:
		m.busy = false
		m.setResult(msg.err, fmt.Sprintf("Loaded %d records", m.service.Snapshot().Total))
		m.refresh()
		return m, nil

	case deletedMsg:
		m.busy = false
		deleted := 0
		if msg.result != nil {
			deleted = len(msg.result.Deleted)
		}
		m.setResult(msg.err, fmt.Sprintf("Deleted %d records", deleted))
		m.refresh()
		return m, nil

	case emailedMsg:
		m.busy = false
		m.setResult(msg.err, fmt.Sprintf("Sent email about %d records", msg.count))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeEmailSubject, modeEmailContent:
			return m.updateEmail(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *Model) setResult(err error, success string) {
	m.err = err
	if err == nil {
		m.status = success
	} else {
		m.status = ""
	}
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.service.Snapshot()
	if snap.Dialog.Kind == listing.DialogView {
		switch msg.String() {
		case "esc", "enter", "q":
			m.service.CloseDialog()
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink
	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Loading..."
		return m, m.load()
	case "n", "right", "pgdown":
		m.service.ChangePage(min(snap.Page+1, max(snap.TotalPages, 1)))
	case "p", "left", "pgup":
		m.service.ChangePage(max(snap.Page-1, 1))
	case "o":
		m.service.SortBy(m.nextSortField(snap.SortField))
	case "O":
		m.service.SortBy(snap.SortField)
	case " ", "x":
		if id, ok := m.cursorID(); ok {
			m.report(m.service.ToggleSelect(id))
		}
	case "a":
		m.service.ToggleSelectAll()
	case "enter":
		if id, ok := m.cursorID(); ok {
			m.report(m.service.OpenDialog(listing.DialogView, id))
		}
	case "d":
		if len(snap.Selected) == 0 {
			m.report(domainerr.ErrNoSelection)
			return m, nil
		}
		m.mode = modeConfirmDelete
	case "e":
		if err := m.service.OpenDialog(listing.DialogEmail, 0); err != nil {
			m.report(err)
			return m, nil
		}
		m.mode = modeEmailSubject
		m.subject.SetValue(snap.Dialog.Email.Subject)
		m.subject.Focus()
		return m, textinput.Blink
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.service.Search("")
		fallthrough
	case tea.KeyEnter:
		m.mode = modeTable
		m.search.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.service.Search(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeTable
	switch msg.String() {
	case "y", "Y":
		m.busy = true
		m.status = "Deleting..."
		return m, m.deleteSelected()
	}
	m.status = "Cancelled, nothing deleted"
	return m, nil
}

func (m Model) deleteSelected() tea.Cmd {
	return func() tea.Msg {
		// The prompt was answered in the browser before this command ran.
		result, err := m.service.DeleteSelected(m.ctx, func(context.Context, int) (bool, error) {
			return true, nil
		})
		return deletedMsg{result: result, err: err}
	}
}

func (m Model) updateEmail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeTable
		m.subject.Blur()
		m.content.Blur()
		m.service.CloseDialog()
		return m, nil
	case tea.KeyEnter:
		if m.mode == modeEmailSubject {
			m.mode = modeEmailContent
			m.subject.Blur()
			m.content.Focus()
			return m, textinput.Blink
		}
		draft := listing.EmailDraft{Subject: m.subject.Value(), Content: m.content.Value()}
		m.service.SetEmailDraft(draft)
		m.mode = modeTable
		m.content.Blur()
		m.busy = true
		m.status = "Sending..."
		count := len(m.service.Snapshot().Selected)
		return m, func() tea.Msg {
			return emailedMsg{count: count, err: m.service.SendEmails(m.ctx, draft)}
		}
	}

	var cmd tea.Cmd
	if m.mode == modeEmailSubject {
		m.subject, cmd = m.subject.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) report(err error) {
	m.err = err
	if err != nil {
		m.status = ""
	}
}

func (m Model) cursorID() (int64, bool) {
	row := m.table.SelectedRow()
	if len(row) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m Model) nextSortField(current string) string {
	for i, f := range m.columns {
		if f.Name == current {
			return m.columns[(i+1)%len(m.columns)].Name
		}
	}
	return m.columns[0].Name
}

// refresh copies the controller's window into the table.
func (m *Model) refresh() {
	snap := m.service.Snapshot()
	rows := make([]table.Row, len(snap.Rows))
	for i, r := range snap.Rows {
		row := make(table.Row, 0, len(m.columns)+1)
		if r.Selected {
			row = append(row, selectMark)
		} else {
			row = append(row, "")
		}
		for _, f := range m.columns {
			row = append(row, cliadapter.FormatCell(r.Record.Get(f.Name)))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// View renders the browser.
func (m Model) View() string {
	snap := m.service.Snapshot()
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(m.schema.Title))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Info.Render(m.summary(snap)))
	sb.WriteString("\n\n")

	searchStyle := m.styles.Search
	if m.mode == modeSearch {
		searchStyle = m.styles.Focused
	}
	sb.WriteString(searchStyle.Render(m.search.View()))
	sb.WriteString("\n")

	if snap.Dialog.Kind == listing.DialogView {
		sb.WriteString(m.renderDetail(snap.Dialog))
	} else {
		sb.WriteString(m.table.View())
	}
	sb.WriteString("\n")

	switch m.mode {
	case modeConfirmDelete:
		sb.WriteString(m.styles.Prompt.Render(fmt.Sprintf(
			"Delete %d %s record(s)? This cannot be undone. [y/N]", len(snap.Selected), m.schema.Resource)))
	case modeEmailSubject, modeEmailContent:
		sb.WriteString(m.styles.Prompt.Render(fmt.Sprintf("Email about %d record(s)", len(snap.Selected))))
		sb.WriteString("\n")
		sb.WriteString(m.subject.View())
		sb.WriteString("\n")
		sb.WriteString(m.content.View())
	default:
		sb.WriteString(m.renderStatus())
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(
		"[/] search  [o/O] sort  [n/p] page  [space] select  [a] all  [enter] view  [d] delete  [e] email  [r] reload  [q] quit"))
	return sb.String()
}

func (m Model) summary(snap primary.Snapshot) string {
	if !snap.Ready {
		return "loading..."
	}
	dir := "asc"
	if snap.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("%d of %d  |  sorted by %s %s  |  page %d/%d  |  %d selected",
		snap.Matched, snap.Total, snap.SortField, dir, snap.Page, max(snap.TotalPages, 1), len(snap.Selected))
}

func (m Model) renderStatus() string {
	switch {
	case m.err != nil && domainerr.NeedsLogin(m.err):
		return m.styles.Error.Render("Not signed in or session expired. Run 'shipdesk login' and reload.")
	case m.err != nil:
		return m.styles.Error.Render(m.err.Error())
	case m.status != "":
		return m.styles.Success.Render(m.status)
	}
	return ""
}

func (m Model) renderDetail(d listing.Dialog) string {
	var sb strings.Builder
	for _, f := range m.schema.Columns() {
		sb.WriteString(m.styles.Label.Render(f.Label))
		sb.WriteString(d.Record.Get(f.Name).String())
		sb.WriteString("\n")
	}
	return m.styles.Detail.Render(strings.TrimSuffix(sb.String(), "\n"))
}
