package beverage

import (
	"math"
	"math/rand"

	"taxtool/internal/invoice"
)

const (
	// Reserve band, in đồng, held back for the final adjusting item.
	reserveMin = 25_000
	reserveMax = 60_000

	// Fixed-price items are capped at this quantity per line.
	maxFixedQuantity = 3
)

// SynthesizeItems composes beverage line items so that the subtotal grossed
// up by 10% VAT equals targetPostTax.
//
// One or two items are taken from the catalog at their nominal prices; a
// final single-quantity item has its price backfilled with the remaining
// pre-tax budget so the total closes exactly. The randomness source is
// injected so synthesis is deterministic under test.
func SynthesizeItems(rng *rand.Rand, targetPostTax int64) []invoice.Item {
	targetBeforeTax := float64(targetPostTax) / 1.10

	// Budget for fixed-price items, leaving room for the adjusting item.
	reserve := reserveMin + rng.Int63n(reserveMax-reserveMin+1)
	maxFixed := targetBeforeTax - float64(reserve)
	if maxFixed < float64(minCatalogPrice()) {
		maxFixed = targetBeforeTax * 0.5
	}

	var items []invoice.Item
	var sumSoFar int64

	nFixed := 1 + rng.Intn(2)
	for i := 0; i < nFixed; i++ {
		pick := Catalog[rng.Intn(len(Catalog))]
		remaining := maxFixed - float64(sumSoFar)
		if remaining < float64(pick.Price) {
			break
		}
		maxQty := int(remaining / float64(pick.Price))
		if maxQty > maxFixedQuantity {
			maxQty = maxFixedQuantity
		}
		if maxQty < 1 {
			break
		}
		qty := 1 + rng.Intn(maxQty)
		items = append(items, invoice.Item{
			Name:     pick.Name,
			Unit:     pick.Unit,
			Quantity: qty,
			Price:    pick.Price,
		})
		sumSoFar += pick.Price * int64(qty)
	}

	// Final item: price is the pre-tax residual, not a catalog price.
	// Only the name and unit are reused from the catalog.
	gap := targetBeforeTax - float64(sumSoFar)
	price := int64(math.Round(gap))
	if price < 1 {
		price = 1
	}
	last := Catalog[rng.Intn(len(Catalog))]
	items = append(items, invoice.Item{
		Name:     last.Name,
		Unit:     last.Unit,
		Quantity: 1,
		Price:    price,
	})
	return items
}
