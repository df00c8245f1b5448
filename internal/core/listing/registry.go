// Package listing contains the pure logic behind the record table: filtering,
// sorting, paging, selection and the view-state reducers. Nothing here performs I/O.
package listing

import (
	"cmp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/shipdesk/internal/models"
)

// KindSource reports the declared kind of a field. *schema.Schema implements it.
type KindSource interface {
	Kind(name string) models.Kind
}

// Comparator orders two values of the same field: negative, zero or positive.
type Comparator func(a, b models.Value) int

// Stringifier renders a value for text search. ok is false for null values,
// which never match a query.
type Stringifier func(v models.Value) (s string, ok bool)

// FieldOps bundles the typed operations for one field.
type FieldOps struct {
	Kind    models.Kind
	Compare Comparator
	String  Stringifier
}

// Registry maps field names to their comparator and stringifier.
type Registry struct {
	kinds  KindSource
	locale language.Tag
}

// NewRegistry creates a registry over the declared kinds, collating text for locale.
// A nil source treats every field as undeclared.
func NewRegistry(kinds KindSource, locale language.Tag) *Registry {
	return &Registry{kinds: kinds, locale: locale}
}

// Locale returns the collation locale.
func (r *Registry) Locale() language.Tag {
	return r.locale
}

// Kind returns the declared kind of field, or KindNull if undeclared.
func (r *Registry) Kind(field string) models.Kind {
	if r.kinds == nil {
		return models.KindNull
	}
	return r.kinds.Kind(field)
}

// Ops returns the operations for field. Each call owns a fresh collator, so the
// returned comparator must not be shared across goroutines.
func (r *Registry) Ops(field string) FieldOps {
	kind := r.Kind(field)
	collator := collate.New(r.locale)
	return FieldOps{
		Kind: kind,
		Compare: func(a, b models.Value) int {
			a, b = normalizePair(kind, a, b)
			return compareValues(collator, a, b)
		},
		String: r.Stringifier(field),
	}
}

// Stringifier returns the search stringifier for field. It is cheap to obtain and
// safe for concurrent use.
func (r *Registry) Stringifier(field string) Stringifier {
	return stringify
}

func stringify(v models.Value) (string, bool) {
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

// normalizePair replaces null values with the empty value of the declared kind,
// or of the other operand's kind when the field is undeclared.
func normalizePair(kind models.Kind, a, b models.Value) (models.Value, models.Value) {
	if kind != models.KindNull {
		if a.IsNull() {
			a = models.Zero(kind)
		}
		if b.IsNull() {
			b = models.Zero(kind)
		}
		return a, b
	}
	if a.IsNull() && !b.IsNull() {
		a = models.Zero(b.Kind)
	}
	if b.IsNull() && !a.IsNull() {
		b = models.Zero(a.Kind)
	}
	return a, b
}

// compareValues compares by runtime kind. Values of unrelated kinds compare equal
// so a stable sort leaves them in place.
func compareValues(collator *collate.Collator, a, b models.Value) int {
	switch {
	case a.Kind == models.KindNumber && b.Kind == models.KindNumber:
		return cmp.Compare(a.Number, b.Number)
	case a.Kind == models.KindBool && b.Kind == models.KindBool:
		return compareBool(a.Bool, b.Bool)
	case a.Kind == models.KindDate && b.Kind == models.KindDate,
		a.Kind == models.KindJSON && b.Kind == models.KindJSON:
		return strings.Compare(a.Text, b.Text)
	case a.Kind.Textual() && b.Kind.Textual():
		return collator.CompareString(a.Text, b.Text)
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
