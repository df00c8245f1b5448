package listing

import "github.com/example/shipdesk/internal/models"

// DialogKind identifies which record dialog is open.
type DialogKind int

// Dialog kinds
const (
	DialogNone DialogKind = iota
	DialogView
	DialogEdit
	DialogAdd
	DialogEmail
)

func (k DialogKind) String() string {
	switch k {
	case DialogView:
		return "view"
	case DialogEdit:
		return "edit"
	case DialogAdd:
		return "add"
	case DialogEmail:
		return "email"
	default:
		return "none"
	}
}

// EmailDraft is the message composed in the bulk email dialog.
type EmailDraft struct {
	Subject string
	Content string
}

// Dialog is the open dialog, the record it targets (view/edit/add) and the email draft.
type Dialog struct {
	Kind   DialogKind
	Record models.Record
	Email  EmailDraft
}

// OpenDialog opens kind for record. The email draft survives switching dialogs.
func OpenDialog(d Dialog, kind DialogKind, record models.Record) Dialog {
	return Dialog{Kind: kind, Record: record.Clone(), Email: d.Email}
}

// CloseDialog closes whatever is open, dropping the targeted record.
func CloseDialog(d Dialog) Dialog {
	return Dialog{Email: d.Email}
}

// ApplyEmailDraft stores the composed message.
func ApplyEmailDraft(d Dialog, draft EmailDraft) Dialog {
	d.Email = draft
	return d
}
