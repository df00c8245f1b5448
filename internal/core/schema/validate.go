package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/models"
)

// Operation is the kind of submission being validated.
type Operation int

// Submission operations
const (
	OpCreate Operation = iota
	OpUpdate
)

// Validate checks r against the schema before it is submitted.
// Rules:
// - update requires a persisted id
// - declared fields must match their kind; undeclared server fields pass through
// - required fields (and update-only required fields when editing) must be non-empty
// - enumerated fields must hold one of their options
// - numbers must be finite and non-negative numbers must not be negative
// - dates must be YYYY-MM-DD or RFC 3339 and structured fields must hold a JSON list
//
// Returns nil or a *errors.ValidationError listing every failing field.
func (s *Schema) Validate(r models.Record, op Operation) error {
	var failures []domainerr.FieldError
	fail := func(field, msg string) {
		failures = append(failures, domainerr.FieldError{Field: field, Message: msg})
	}

	if op == OpUpdate && r.ID <= 0 {
		fail(models.FieldID, "is required for update")
	}

	for _, f := range s.Fields {
		v := r.Get(f.Name)
		required := f.Required || (op == OpUpdate && f.RequiredOnUpdate)

		if isEmpty(v) {
			if required {
				fail(f.Name, "is required")
			}
			continue
		}
		if v.Kind != f.Kind {
			fail(f.Name, fmt.Sprintf("must be a %s value", f.Kind))
			continue
		}
		if msg := checkValue(f, v); msg != "" {
			fail(f.Name, msg)
		}
	}

	if len(failures) == 0 {
		return nil
	}
	return &domainerr.ValidationError{Fields: failures}
}

func isEmpty(v models.Value) bool {
	if v.IsNull() {
		return true
	}
	return v.Kind.Textual() && v.Kind != models.KindJSON && strings.TrimSpace(v.Text) == ""
}

func checkValue(f Field, v models.Value) string {
	if len(f.Options) > 0 && !contains(f.Options, v.Text) {
		return "must be one of " + strings.Join(f.Options, ", ")
	}
	switch f.Kind {
	case models.KindNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return "must be a finite number"
		}
		if f.NonNegative && v.Number < 0 {
			return "must not be negative"
		}
	case models.KindDate:
		if !validDate(v.Text) {
			return "must be a date (YYYY-MM-DD)"
		}
	case models.KindJSON:
		var stops []json.RawMessage
		if err := json.Unmarshal([]byte(v.Text), &stops); err != nil {
			return "must be a JSON list"
		}
	}
	return ""
}

// validDate accepts a plain date or a full RFC 3339 timestamp as echoed by the server.
func validDate(s string) bool {
	if _, err := time.Parse(DateLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
