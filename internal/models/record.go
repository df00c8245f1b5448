package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Reserved field names present on every record.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Record is one shipment or quote. ID 0 means the record has not been persisted.
// CreatedAt and UpdatedAt are server-assigned and opaque to the client.
type Record struct {
	ID        int64
	CreatedAt string
	UpdatedAt string
	Fields    map[string]Value
}

// NewRecord returns an unpersisted record with an empty field map.
func NewRecord() Record {
	return Record{Fields: make(map[string]Value)}
}

// Get returns the value of a field by name, including the reserved fields.
// Missing fields return Null.
func (r Record) Get(name string) Value {
	switch name {
	case FieldID:
		return Number(float64(r.ID))
	case FieldCreatedAt:
		if r.CreatedAt == "" {
			return Null()
		}
		return Date(r.CreatedAt)
	case FieldUpdatedAt:
		if r.UpdatedAt == "" {
			return Null()
		}
		return Date(r.UpdatedAt)
	}
	if v, ok := r.Fields[name]; ok {
		return v
	}
	return Null()
}

// Set assigns a domain field. Reserved names are ignored.
func (r *Record) Set(name string, v Value) {
	if IsReserved(name) {
		return
	}
	if r.Fields == nil {
		r.Fields = make(map[string]Value)
	}
	r.Fields[name] = v
}

// FieldNames returns every field name on the record: the reserved fields followed
// by domain fields in name order.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{FieldID, FieldCreatedAt, FieldUpdatedAt}, names...)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.Fields = make(map[string]Value, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Merge overlays the fields of update onto r and returns the result.
// The identity of r is never changed; timestamps are taken from update when present.
func (r Record) Merge(update Record) Record {
	out := r.Clone()
	for k, v := range update.Fields {
		out.Fields[k] = v
	}
	if update.CreatedAt != "" {
		out.CreatedAt = update.CreatedAt
	}
	if update.UpdatedAt != "" {
		out.UpdatedAt = update.UpdatedAt
	}
	return out
}

// IsReserved reports whether name is one of the server-managed fields.
func IsReserved(name string) bool {
	return name == FieldID || name == FieldCreatedAt || name == FieldUpdatedAt
}

// MarshalJSON encodes the record as a flat JSON object. Empty timestamps are omitted
// so the server assigns them.
func (r Record) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(r.Fields)+3)
	obj[FieldID] = json.RawMessage(strconv.FormatInt(r.ID, 10))
	if r.CreatedAt != "" {
		b, _ := json.Marshal(r.CreatedAt)
		obj[FieldCreatedAt] = b
	}
	if r.UpdatedAt != "" {
		b, _ := json.Marshal(r.UpdatedAt)
		obj[FieldUpdatedAt] = b
	}
	for name, v := range r.Fields {
		b, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", name, err)
		}
		obj[name] = b
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes a flat JSON object. Field kinds are inferred from the JSON
// types; schemas refine them afterwards (dates, notes, structured strings).
func (r *Record) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	out := NewRecord()
	for name, raw := range obj {
		switch name {
		case FieldID:
			id, err := decodeID(raw)
			if err != nil {
				return err
			}
			out.ID = id
		case FieldCreatedAt:
			out.CreatedAt = decodeTimestamp(raw)
		case FieldUpdatedAt:
			out.UpdatedAt = decodeTimestamp(raw)
		default:
			v, err := decodeValue(raw)
			if err != nil {
				return fmt.Errorf("failed to decode field %s: %w", name, err)
			}
			out.Fields[name] = v
		}
	}

	*r = out
	return nil
}

func encodeValue(v Value) (json.RawMessage, error) {
	switch v.Kind {
	case KindNull:
		return json.RawMessage("null"), nil
	case KindNumber:
		return json.Marshal(v.Number)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindJSON:
		if json.Valid([]byte(v.Text)) {
			return json.RawMessage(v.Text), nil
		}
		return json.Marshal(v.Text)
	default:
		return json.Marshal(v.Text)
	}
}

func decodeValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Null(), nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case '[', '{':
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return Value{}, err
		}
		return JSON(compact.String()), nil
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	}
}

func decodeID(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		// Some services send numeric ids as strings.
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, fmt.Errorf("invalid record id %s", string(trimmed))
		}
		n = json.Number(s)
	}
	id, err := n.Int64()
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid record id %s", string(trimmed))
	}
	return id, nil
}

func decodeTimestamp(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
