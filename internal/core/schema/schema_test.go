package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/models"
)

func TestLookup(t *testing.T) {
	s, err := Lookup("Shipment")
	if err != nil || s != Shipment {
		t.Fatalf("expected shipment schema, got %v, %v", s, err)
	}
	if _, err := Lookup("invoice"); err == nil {
		t.Error("expected error for unknown resource")
	}
	if diff := cmp.Diff([]string{"quote", "shipment"}, Resources()); diff != "" {
		t.Errorf("resources mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_Columns(t *testing.T) {
	cols := Shipment.Columns()
	if cols[0].Name != models.FieldID {
		t.Errorf("expected id first, got %s", cols[0].Name)
	}
	if cols[len(cols)-1].Name != models.FieldUpdatedAt || cols[len(cols)-2].Name != models.FieldCreatedAt {
		t.Error("expected timestamps last")
	}
	if len(cols) != len(Shipment.Fields)+3 {
		t.Errorf("expected %d columns, got %d", len(Shipment.Fields)+3, len(cols))
	}
}

func TestSchema_Kind(t *testing.T) {
	tests := []struct {
		field string
		want  models.Kind
	}{
		{models.FieldID, models.KindNumber},
		{models.FieldCreatedAt, models.KindDate},
		{"ship_weight", models.KindNumber},
		{"ship_tarp", models.KindBool},
		{"ship_notes", models.KindNote},
		{"ship_load_date", models.KindDate},
		{"unknown", models.KindNull},
	}
	for _, tt := range tests {
		if got := Shipment.Kind(tt.field); got != tt.want {
			t.Errorf("Kind(%s) = %s, want %s", tt.field, got, tt.want)
		}
	}
}

func TestSchema_Blank(t *testing.T) {
	r := Quote.Blank()
	if r.ID != 0 {
		t.Errorf("expected unpersisted record, got id %d", r.ID)
	}
	if got := r.Get("quote_pickup"); got.Kind != models.KindJSON || got.Text != "[]" {
		t.Errorf("expected empty stop list, got %+v", got)
	}
	if got := r.Get("quote_hot"); got.Kind != models.KindBool || got.Bool {
		t.Errorf("expected false, got %+v", got)
	}
	if len(r.Fields) != len(Quote.Fields) {
		t.Errorf("expected every field present, got %d", len(r.Fields))
	}
}

func TestSchema_Normalize(t *testing.T) {
	in := models.NewRecord()
	in.Set("ship_load_date", models.Text("2024-05-01"))
	in.Set("ship_notes", models.Text("fragile"))
	in.Set("ship_weight", models.Text(" 1200.5 "))
	in.Set("ship_price", models.Text("call"))
	in.Set("ship_tarp", models.Number(1))
	in.Set("ship_driver", models.Null())
	in.Set("server_extra", models.Text("kept"))

	out := Shipment.Normalize(in)

	tests := []struct {
		field string
		want  models.Value
	}{
		{"ship_load_date", models.Date("2024-05-01")},
		{"ship_notes", models.Note("fragile")},
		{"ship_weight", models.NumberText(1200.5, "1200.5")},
		{"ship_price", models.Text("call")},
		{"ship_tarp", models.Bool(true)},
		{"ship_driver", models.Null()},
		{"server_extra", models.Text("kept")},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, out.Get(tt.field)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.field, diff)
		}
	}
	if in.Get("ship_weight").Kind != models.KindText {
		t.Error("input modified")
	}
}

func TestSchema_Normalize_NonFiniteStrings(t *testing.T) {
	for _, text := range []string{"NaN", "Inf", "-Infinity"} {
		in := models.NewRecord()
		in.Set("ship_price", models.Text(text))

		got := Shipment.Normalize(in).Get("ship_price")
		if diff := cmp.Diff(models.Text(text), got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func TestSchema_Normalize_KeepsReceivedNumberText(t *testing.T) {
	in := models.NewRecord()
	in.Set("ship_price", models.Text("1500.00"))

	got := Shipment.Normalize(in).Get("ship_price")
	if got.Number != 1500 {
		t.Errorf("expected 1500, got %v", got.Number)
	}
	if got.String() != "1500.00" {
		t.Errorf("expected display 1500.00, got %q", got.String())
	}
}

func TestSchema_Normalize_JSONStrings(t *testing.T) {
	in := models.NewRecord()
	in.Set("quote_pickup", models.Text(`[{"city":"Chicago"}]`))
	in.Set("quote_delivery", models.Text(""))

	out := Quote.Normalize(in)
	if diff := cmp.Diff(models.JSON(`[{"city":"Chicago"}]`), out.Get("quote_pickup")); diff != "" {
		t.Errorf("pickup mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(models.JSON("[]"), out.Get("quote_delivery")); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_Parse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		field   string
		input   string
		want    models.Value
		wantErr bool
	}{
		{"number", Shipment, "ship_weight", "1500", models.Number(1500), false},
		{"empty number", Shipment, "ship_price", "", models.Number(0), false},
		{"bad number", Shipment, "ship_price", "cheap", models.Value{}, true},
		{"nan", Shipment, "ship_price", "NaN", models.Value{}, true},
		{"infinity", Shipment, "ship_price", "Inf", models.Value{}, true},
		{"negative infinity", Shipment, "ship_weight", "-Inf", models.Value{}, true},
		{"bool yes", Shipment, "ship_tarp", "yes", models.Bool(true), false},
		{"bool false", Shipment, "ship_tarp", "false", models.Bool(false), false},
		{"bad bool", Shipment, "ship_tarp", "maybe", models.Value{}, true},
		{"date", Shipment, "ship_load_date", "2024-01-02", models.Date("2024-01-02"), false},
		{"note trimmed", Shipment, "ship_notes", "  hi  ", models.Note("hi"), false},
		{"json", Quote, "quote_pickup", `[{"city":"Gary"}]`, models.JSON(`[{"city":"Gary"}]`), false},
		{"bad json", Quote, "quote_pickup", `[{`, models.Value{}, true},
		{"unknown field", Shipment, "quote_type", "x", models.Value{}, true},
		{"reserved field", Shipment, models.FieldID, "4", models.Value{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.schema.Parse(tt.field, tt.input)
			if tt.wantErr {
				var verr *domainerr.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if verr.Message(tt.field) == "" {
					t.Errorf("expected message for %s, got %v", tt.field, verr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
