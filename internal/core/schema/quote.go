package schema

import "github.com/example/shipdesk/internal/models"

// Quote is the schema for the /quote resource. Pickup and delivery hold lists of
// stops (address, city, date, packages, weight, ...) kept as structured JSON.
var Quote = register(&Schema{
	Resource: "quote",
	Module:   "quotes",
	Title:    "Quotes",
	Fields: []Field{
		{Name: "quote_type", Label: "Type", Kind: models.KindText, Required: true},
		{Name: "quote_customer", Label: "Customer", Kind: models.KindText, Required: true},
		{Name: "quote_cust_ref_no", Label: "Cust Ref #", Kind: models.KindText, RequiredOnUpdate: true},
		{Name: "quote_booked_by", Label: "Booked By", Kind: models.KindText},
		{Name: "quote_temperature", Label: "Temperature", Kind: models.KindText},
		{Name: "quote_hot", Label: "Hot", Kind: models.KindBool},
		{Name: "quote_team", Label: "Team", Kind: models.KindBool},
		{Name: "quote_air_ride", Label: "Air Ride", Kind: models.KindBool},
		{Name: "quote_tarp", Label: "Tarp", Kind: models.KindBool},
		{Name: "quote_hazmat", Label: "Hazmat", Kind: models.KindBool},
		{Name: "quote_pickup", Label: "Pickup", Kind: models.KindJSON},
		{Name: "quote_delivery", Label: "Delivery", Kind: models.KindJSON},
	},
})
