// Package models contains the domain types shared by the list controller,
// the record schemas and the remote service adapters.
package models

import (
	"strconv"
)

// Kind identifies the runtime type of a field value.
type Kind int

// Value kinds
const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindDate
	KindNote
	KindJSON
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindText:   "text",
	KindNumber: "number",
	KindBool:   "boolean",
	KindDate:   "date",
	KindNote:   "note",
	KindJSON:   "json",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Textual reports whether values of this kind carry their payload in Value.Text.
func (k Kind) Textual() bool {
	return k == KindText || k == KindDate || k == KindNote || k == KindJSON
}

// Value is a single typed field value. Only the payload matching Kind is meaningful.
// JSON values keep their raw encoded form in Text.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// NumberText returns a numeric value that displays as raw, the form it was received in.
func NumberText(f float64, raw string) Value { return Value{Kind: KindNumber, Number: f, Text: raw} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Date returns a date-string value.
func Date(s string) Value { return Value{Kind: KindDate, Text: s} }

// Note returns a free-text note value.
func Note(s string) Value { return Value{Kind: KindNote, Text: s} }

// JSON returns a structured value holding raw JSON.
func JSON(raw string) Value { return Value{Kind: KindJSON, Text: raw} }

// IsNull reports whether the value is null or unset.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String returns the display form of the value. Numbers use their received text
// or else their shortest decimal form, booleans render as "true"/"false" and null
// renders empty.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		if v.Text != "" {
			return v.Text
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNull:
		return ""
	default:
		return v.Text
	}
}

// Zero returns the empty value for kind k.
func Zero(k Kind) Value {
	switch k {
	case KindNumber:
		return Number(0)
	case KindBool:
		return Bool(false)
	case KindNull:
		return Null()
	default:
		return Value{Kind: k}
	}
}
