package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"provolx/provolx/utils/types"
)

func TestCompose_ContainsColumnsVerbatim(t *testing.T) {
	columns := cols("VehicleID", "Mileage", "ServiceType", "Cost")
	for domain := range promptTemplates {
		out := Compose(domain, columns, "Fleet")
		assert.Contains(t, out, "Available columns: VehicleID, Mileage, ServiceType, Cost", domain)
		assert.Contains(t, out, "You're analyzing Fleet which contains", domain)
		assert.True(t, strings.HasSuffix(out, "Always use specific data from these columns to answer questions."), domain)
	}
}

func TestCompose_NoColumns(t *testing.T) {
	out := Compose(General, nil, "")
	assert.Contains(t, out, "Available columns: None provided")
	assert.Contains(t, out, "You're analyzing data which contains GENERAL DATA.")
}

func TestCompose_DefaultNames(t *testing.T) {
	want := map[Domain]string{
		Automotive:     "You're analyzing vehicle data which contains AUTOMOTIVE/VEHICLE DATA.",
		ServiceRecords: "You're analyzing service records which contains SERVICE RECORDS DATA.",
		CustomerData:   "You're analyzing customer data which contains CUSTOMER DATA.",
		SalesData:      "You're analyzing sales data which contains SALES DATA.",
		InventoryData:  "You're analyzing inventory data which contains INVENTORY DATA.",
		General:        "You're analyzing data which contains GENERAL DATA.",
	}
	for domain, line := range want {
		assert.Contains(t, Compose(domain, cols("x"), ""), line)
	}
}

func TestCompose_ExampleQuestions(t *testing.T) {
	assert.Contains(t, Compose(Automotive, nil, ""), `- "Calculate average mileage by model"`)
	assert.Contains(t, Compose(InventoryData, nil, ""), `- "What's the stock turnover rate?"`)
	assert.NotContains(t, Compose(General, nil, ""), "Example questions")
}

func TestCompose_UnknownDomainFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, Compose(General, cols("a"), "n"), Compose(Domain("Weather"), cols("a"), "n"))
}

func TestCompose_PlaceholdersInValuesAreNotExpanded(t *testing.T) {
	out := Compose(General, cols("{name}"), "{columns}")
	assert.Contains(t, out, "You're analyzing {columns} which")
	assert.Contains(t, out, "Available columns: {name}")
}

func TestColumnList(t *testing.T) {
	columns := []types.Column{{"name": "A"}, {"other": 1}, {"name": "C"}}
	assert.Equal(t, "A, Unnamed, C", ColumnList(columns, "Unnamed", "None provided"))
	assert.Equal(t, "A, , C", ColumnList(columns, "", "None provided"))
	assert.Equal(t, "None provided", ColumnList(nil, "Unnamed", "None provided"))
}
