// Package beverage synthesizes beverage-only invoices whose post-tax (10%)
// total exactly matches a caller-supplied target, and classifies existing
// invoice files as beverage-only or not.
package beverage

import "github.com/shopspring/decimal"

// CatalogItem is one of the fixed beverage products used for synthesis.
type CatalogItem struct {
	Name  string
	Unit  string
	Price int64 // nominal unit price in đồng
}

// Catalog is the fixed product list. Beverages are taxed at 10%; the
// synthesized total after 10% VAT must equal the replaced invoice's
// original (8%) total.
var Catalog = []CatalogItem{
	{Name: "Sapporo / Sapporo", Unit: "Ly", Price: 55_000},
	{Name: "Tiger Draught / Tiger Draught", Unit: "Ly", Price: 45_000},
	{Name: "Coke / Coke", Unit: "Ly", Price: 25_000},
}

// VATRate is the beverage tax rate.
var VATRate = decimal.NewFromFloat(0.10)

// keywords identify catalog products in invoice line names (case-folded
// substring match).
var keywords = []string{"sapporo", "tiger draught", "coke"}

// serviceFeeMarkers mark service-fee lines the classifier ignores.
var serviceFeeMarkers = []string{"phí dịch vụ", "service"}

func minCatalogPrice() int64 {
	min := Catalog[0].Price
	for _, it := range Catalog[1:] {
		if it.Price < min {
			min = it.Price
		}
	}
	return min
}
