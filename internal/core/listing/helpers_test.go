package listing

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/example/shipdesk/internal/models"
)

// testKinds declares the kinds of the fields used in these tests.
type testKinds map[string]models.Kind

func (k testKinds) Kind(name string) models.Kind {
	switch name {
	case models.FieldID:
		return models.KindNumber
	case models.FieldCreatedAt, models.FieldUpdatedAt:
		return models.KindDate
	}
	return k[name]
}

var kinds = testKinds{
	"city":   models.KindText,
	"weight": models.KindNumber,
	"tarp":   models.KindBool,
	"notes":  models.KindNote,
}

func testRegistry() *Registry {
	return NewRegistry(kinds, language.AmericanEnglish)
}

func rec(id int64, fields map[string]models.Value) models.Record {
	r := models.NewRecord()
	r.ID = id
	r.CreatedAt = fmt.Sprintf("2024-01-%02d", id%28+1)
	for k, v := range fields {
		r.Set(k, v)
	}
	return r
}

func ids(records []models.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
