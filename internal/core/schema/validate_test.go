package schema

import (
	"errors"
	"math"
	"testing"

	domainerr "github.com/example/shipdesk/internal/core/errors"
	"github.com/example/shipdesk/internal/models"
)

func validShipment() models.Record {
	r := Shipment.Blank()
	r.Set("ship_ftl_ltl", models.Text(LoadFTL))
	r.Set("ship_load_date", models.Date("2024-01-15"))
	r.Set("ship_weight", models.Number(1200))
	return r
}

func validQuote() models.Record {
	r := Quote.Blank()
	r.Set("quote_type", models.Text("Dry Van"))
	r.Set("quote_customer", models.Text("Acme"))
	return r
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		schema     *Schema
		record     func() models.Record
		op         Operation
		wantFields []string
	}{
		{
			name:   "valid shipment create",
			schema: Shipment,
			record: validShipment,
			op:     OpCreate,
		},
		{
			name:   "missing load type",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_ftl_ltl", models.Text("  "))
				return r
			},
			op:         OpCreate,
			wantFields: []string{"ship_ftl_ltl"},
		},
		{
			name:   "load type not an option",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_ftl_ltl", models.Text("Partial"))
				return r
			},
			op:         OpCreate,
			wantFields: []string{"ship_ftl_ltl"},
		},
		{
			name:   "negative price and bad date",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_price", models.Number(-1))
				r.Set("ship_load_date", models.Date("01/15/2024"))
				return r
			},
			op:         OpCreate,
			wantFields: []string{"ship_load_date", "ship_price"},
		},
		{
			name:   "non-finite numbers",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_price", models.Number(math.NaN()))
				r.Set("ship_weight", models.Number(math.Inf(1)))
				return r
			},
			op:         OpCreate,
			wantFields: []string{"ship_price", "ship_weight"},
		},
		{
			name:   "server timestamp date accepted",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_load_date", models.Date("2024-01-15T08:00:00Z"))
				return r
			},
			op: OpCreate,
		},
		{
			name:   "wrong kind",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_weight", models.Text("heavy"))
				return r
			},
			op:         OpCreate,
			wantFields: []string{"ship_weight"},
		},
		{
			name:       "update without id",
			schema:     Shipment,
			record:     validShipment,
			op:         OpUpdate,
			wantFields: []string{models.FieldID},
		},
		{
			name:   "undeclared server fields pass",
			schema: Shipment,
			record: func() models.Record {
				r := validShipment()
				r.Set("ship_legacy_code", models.Number(3))
				return r
			},
			op: OpCreate,
		},
		{
			name:   "quote create without ref no",
			schema: Quote,
			record: validQuote,
			op:     OpCreate,
		},
		{
			name:   "quote update requires ref no",
			schema: Quote,
			record: func() models.Record {
				r := validQuote()
				r.ID = 3
				return r
			},
			op:         OpUpdate,
			wantFields: []string{"quote_cust_ref_no"},
		},
		{
			name:   "quote stops must be a list",
			schema: Quote,
			record: func() models.Record {
				r := validQuote()
				r.Set("quote_pickup", models.JSON(`{"city":"Gary"}`))
				return r
			},
			op:         OpCreate,
			wantFields: []string{"quote_pickup"},
		},
		{
			name:   "quote missing required fields",
			schema: Quote,
			record: func() models.Record {
				return Quote.Blank()
			},
			op:         OpCreate,
			wantFields: []string{"quote_type", "quote_customer"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate(tt.record(), tt.op)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *domainerr.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Errorf("expected %d failures, got %v", len(tt.wantFields), verr)
			}
			for _, f := range tt.wantFields {
				if verr.Message(f) == "" {
					t.Errorf("expected failure for %s, got %v", f, verr)
				}
			}
		})
	}
}
