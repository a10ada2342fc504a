// Package analysis infers what kind of spreadsheet a user is asking about and
// builds the instruction prompt tailored to it.
package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"provolx/provolx/utils/types"
)

// Domain is the inferred subject of a dataset. Values are the labels shown to the model.
type Domain string

const (
	Automotive     Domain = "Automotive/Vehicle"
	ServiceRecords Domain = "Service Records"
	CustomerData   Domain = "Customer Data"
	SalesData      Domain = "Sales Data"
	InventoryData  Domain = "Inventory Data"
	General        Domain = "General Data"
)

type domainRule struct {
	domain   Domain
	keywords []string
}

// Order matters: "service" and "parts" appear in more than one set and the
// first matching rule wins.
var domainRules = []domainRule{
	{Automotive, []string{
		"vehicle", "car", "model", "make", "year", "mileage", "vin",
		"engine", "transmission", "fuel", "maintenance", "service",
	}},
	{ServiceRecords, []string{
		"service", "appointment", "booking", "technician", "repair",
		"diagnosis", "labor", "parts", "cost", "invoice",
	}},
	{CustomerData, []string{
		"customer", "client", "name", "phone", "email", "address",
		"loyalty", "feedback", "satisfaction", "complaint",
	}},
	{SalesData, []string{
		"sale", "purchase", "price", "dealer", "salesperson",
		"transaction", "payment", "financing",
	}},
	{InventoryData, []string{
		"inventory", "stock", "parts", "sku", "quantity",
		"supplier", "warehouse", "location",
	}},
}

// Classify guesses the Domain from column names and the first sample row.
func Classify(columns []types.Column, sample []types.Row) Domain {
	if len(columns) == 0 {
		return General
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = strings.ToLower(col.Name())
	}

	var sampleText string
	if len(sample) > 0 {
		sampleText = strings.ToLower(rowText(sample[0]))
	}

	haystack := strings.Join(names, " ") + " " + sampleText

	for _, rule := range domainRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.domain
			}
		}
	}
	return General
}

func rowText(row types.Row) string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = CellText(v)
	}
	return "[" + strings.Join(cells, ", ") + "]"
}

// CellText renders a JSON scalar cell as plain text.
func CellText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(x)
	}
}
