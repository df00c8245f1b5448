package schema

import "github.com/example/shipdesk/internal/models"

// Load types accepted for ship_ftl_ltl.
const (
	LoadFTL = "FTL"
	LoadLTL = "LTL"
)

// Shipment is the schema for the /shipment resource.
var Shipment = register(&Schema{
	Resource: "shipment",
	Module:   "shipments",
	Title:    "Shipments",
	Fields: []Field{
		{Name: "ship_load_date", Label: "Load Date", Kind: models.KindDate},
		{Name: "ship_pickup_location", Label: "Pickup", Kind: models.KindText},
		{Name: "ship_delivery_location", Label: "Delivery", Kind: models.KindText},
		{Name: "ship_driver", Label: "Driver", Kind: models.KindText},
		{Name: "ship_weight", Label: "Weight", Kind: models.KindNumber, NonNegative: true},
		{Name: "ship_ftl_ltl", Label: "FTL/LTL", Kind: models.KindText, Required: true, Options: []string{LoadFTL, LoadLTL}},
		{Name: "ship_tarp", Label: "Tarp", Kind: models.KindBool},
		{Name: "ship_equipment", Label: "Equipment", Kind: models.KindText},
		{Name: "ship_price", Label: "Price", Kind: models.KindNumber, NonNegative: true},
		{Name: "ship_notes", Label: "Notes", Kind: models.KindNote},
	},
})
