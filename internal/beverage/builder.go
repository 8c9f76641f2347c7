package beverage

import (
	"math/rand"
	"time"

	"taxtool/internal/invoice"
)

// DateLayout is the display date format used on invoices.
const DateLayout = "02/01/2006"

// BuildInvoice assembles a beverage invoice whose post-tax (10%) total
// equals originalTotal, the replaced invoice's original total.
//
// No service-fee line is added: the total must stay exactly
// sum(items) * 1.10. Discounts are zero and FinalTotal is left for the
// spreadsheet writer to derive.
func BuildInvoice(rng *rand.Rand, id string, method invoice.PaymentMethod, originalTotal int64, date string) *invoice.Invoice {
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	return &invoice.Invoice{
		ID:            id,
		Date:          date,
		PaymentMethod: method,
		Items:         SynthesizeItems(rng, originalTotal),
		VATRate:       VATRate,
	}
}
