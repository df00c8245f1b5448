// Package schema describes the record types managed by shipdesk.
// Schemas are swappable: the list controller only sees them through the field
// registry and the Validator interface.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/models"
)

// DateLayout is the layout accepted for date fields entered by the user.
const DateLayout = "2006-01-02"

// Field describes one domain field.
type Field struct {
	Name     string
	Label    string
	Kind     models.Kind
	Required bool
	// RequiredOnUpdate applies only when editing an existing record.
	RequiredOnUpdate bool
	Options          []string
	NonNegative      bool
}

// Schema describes one remote resource.
type Schema struct {
	Resource string // path segment, e.g. "shipment"
	Module   string // module name sent with bulk email, e.g. "shipments"
	Title    string
	Fields   []Field
}

var reservedFields = []Field{
	{Name: models.FieldID, Label: "ID", Kind: models.KindNumber},
	{Name: models.FieldCreatedAt, Label: "Created", Kind: models.KindDate},
	{Name: models.FieldUpdatedAt, Label: "Updated", Kind: models.KindDate},
}

var registry = map[string]*Schema{}

func register(s *Schema) *Schema {
	registry[s.Resource] = s
	return s
}

// Lookup returns the schema registered for resource.
func Lookup(resource string) (*Schema, error) {
	s, ok := registry[strings.ToLower(resource)]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q (known: %s)", resource, strings.Join(Resources(), ", "))
	}
	return s, nil
}

// Resources returns the registered resource names in order.
func Resources() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the definition of name, including the reserved fields.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range reservedFields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Kind returns the declared kind of name, or KindNull when the schema does not know it.
func (s *Schema) Kind(name string) models.Kind {
	if f, ok := s.Field(name); ok {
		return f.Kind
	}
	return models.KindNull
}

// Columns returns the reserved fields followed by the domain fields, in display order.
func (s *Schema) Columns() []Field {
	out := make([]Field, 0, len(reservedFields)+len(s.Fields))
	out = append(out, reservedFields[0])
	out = append(out, s.Fields...)
	return append(out, reservedFields[1:]...)
}

// Blank returns an unpersisted record with every domain field set to its empty value.
func (s *Schema) Blank() models.Record {
	r := models.NewRecord()
	for _, f := range s.Fields {
		if f.Kind == models.KindJSON {
			r.Set(f.Name, models.JSON("[]"))
			continue
		}
		r.Set(f.Name, models.Zero(f.Kind))
	}
	return r
}

// Normalize refines the kinds inferred from JSON to the declared ones: strings become
// dates or notes, numeric strings become numbers, and JSON-encoded strings in structured
// fields are decoded. Values that cannot be coerced are left as received.
func (s *Schema) Normalize(r models.Record) models.Record {
	out := r.Clone()
	for name, v := range out.Fields {
		f, ok := s.Field(name)
		if !ok || v.IsNull() || v.Kind == f.Kind {
			continue
		}
		if coerced, ok := coerce(f.Kind, v); ok {
			out.Fields[name] = coerced
		}
	}
	return out
}

func coerce(kind models.Kind, v models.Value) (models.Value, bool) {
	switch kind {
	case models.KindDate, models.KindNote, models.KindText:
		if v.Kind.Textual() {
			return models.Value{Kind: kind, Text: v.Text}, true
		}
	case models.KindNumber:
		if v.Kind == models.KindText {
			text := strings.TrimSpace(v.Text)
			if f, ok := parseFinite(text); ok {
				return models.NumberText(f, text), true
			}
		}
	case models.KindBool:
		switch {
		case v.Kind == models.KindNumber:
			return models.Bool(v.Number != 0), true
		case v.Kind == models.KindText:
			b, err := strconv.ParseBool(strings.TrimSpace(v.Text))
			if err == nil {
				return models.Bool(b), true
			}
		}
	case models.KindJSON:
		if v.Kind == models.KindText {
			text := strings.TrimSpace(v.Text)
			if text == "" {
				return models.JSON("[]"), true
			}
			if json.Valid([]byte(text)) {
				return models.JSON(text), true
			}
		}
	}
	return v, false
}

// parseFinite parses a decimal number, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Parse converts user input for field name into a typed value.
// Empty input yields the field's empty value.
func (s *Schema) Parse(name, input string) (models.Value, error) {
	f, ok := s.Field(name)
	if !ok {
		return models.Value{}, &domainerr.ValidationError{Fields: []domainerr.FieldError{
			{Field: name, Message: fmt.Sprintf("unknown %s field", s.Resource)},
		}}
	}
	if models.IsReserved(name) {
		return models.Value{}, &domainerr.ValidationError{Fields: []domainerr.FieldError{
			{Field: name, Message: "is assigned by the server"},
		}}
	}

	input = strings.TrimSpace(input)
	switch f.Kind {
	case models.KindNumber:
		if input == "" {
			return models.Number(0), nil
		}
		n, ok := parseFinite(input)
		if !ok {
			return models.Value{}, fieldError(name, "must be a number")
		}
		return models.Number(n), nil
	case models.KindBool:
		if input == "" {
			return models.Bool(false), nil
		}
		b, err := parseBool(input)
		if err != nil {
			return models.Value{}, fieldError(name, "must be true or false")
		}
		return models.Bool(b), nil
	case models.KindJSON:
		if input == "" {
			return models.JSON("[]"), nil
		}
		if !json.Valid([]byte(input)) {
			return models.Value{}, fieldError(name, "must be valid JSON")
		}
		return models.JSON(input), nil
	default:
		return models.Value{Kind: f.Kind, Text: input}, nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func fieldError(name, msg string) error {
	return &domainerr.ValidationError{Fields: []domainerr.FieldError{{Field: name, Message: msg}}}
}
