package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"provolx/provolx/utils/types"
)

func cols(names ...string) []types.Column {
	out := make([]types.Column, len(names))
	for i, n := range names {
		out[i] = types.Column{"name": n}
	}
	return out
}

func TestClassify_EmptyColumnsIsGeneral(t *testing.T) {
	assert.Equal(t, General, Classify(nil, nil))
	assert.Equal(t, General, Classify([]types.Column{}, []types.Row{{"vehicle", "service"}}))
}

func TestClassify_EachDomain(t *testing.T) {
	tests := []struct {
		name    string
		columns []types.Column
		sample  []types.Row
		want    Domain
	}{
		{"automotive by column", cols("VehicleID", "Mileage", "ServiceType", "Cost"), nil, Automotive},
		{"service beats customer", cols("Technician", "Customer"), nil, ServiceRecords},
		{"service alone is automotive", cols("Service"), nil, Automotive},
		{"customer", cols("Email", "Phone"), nil, CustomerData},
		{"sales", cols("Dealer", "Price"), nil, SalesData},
		{"parts is service records", cols("Parts", "Warehouse"), nil, ServiceRecords},
		{"inventory", cols("SKU", "Quantity"), nil, InventoryData},
		{"general", cols("Alpha", "Beta"), []types.Row{{"x", float64(1)}}, General},
		{"keyword from first sample row", cols("A", "B"), []types.Row{{"Oil Change", "Warehouse 7"}}, InventoryData},
		{"only first row is inspected", cols("A"), []types.Row{{"x"}, {"vehicle"}}, General},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.columns, tt.sample))
		})
	}
}

func TestClassify_CaseInsensitiveSubstring(t *testing.T) {
	assert.Equal(t, SalesData, Classify(cols("TOTAL_SALES"), nil))
	// "carrier" contains "car"
	assert.Equal(t, Automotive, Classify(cols("Carrier"), nil))
}

func TestClassify_MalformedDescriptors(t *testing.T) {
	columns := []types.Column{{"label": "no name"}, {"name": nil}, {"name": 2023}}
	sample := []types.Row{{nil, true, float64(3.5)}}

	assert.NotPanics(t, func() { Classify(columns, sample) })
	assert.Equal(t, General, Classify(columns, sample))
}

func TestClassify_NonStringCellsCoerced(t *testing.T) {
	// bool cells render as "True"/"False", nothing matches
	assert.Equal(t, General, Classify(cols("A"), []types.Row{{true, nil, float64(7)}}))
	assert.Equal(t, CustomerData, Classify(cols("A"), []types.Row{{"Client 7", float64(1)}}))
}

func TestClassify_Idempotent(t *testing.T) {
	columns := cols("Invoice", "Labor")
	sample := []types.Row{{"INV-1", float64(120)}}
	first := Classify(columns, sample)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(columns, sample))
	}
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "None", CellText(nil))
	assert.Equal(t, "15000", CellText(float64(15000)))
	assert.Equal(t, "1500000", CellText(float64(1500000)))
	assert.Equal(t, "2.5", CellText(2.5))
	assert.Equal(t, "True", CellText(true))
	assert.Equal(t, "abc", CellText("abc"))
	assert.Equal(t, "7", CellText(7))
}
