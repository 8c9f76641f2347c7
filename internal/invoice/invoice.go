// Package invoice defines the tax invoice record, the file naming scheme the
// rest of the toolkit keys on, and spreadsheet read/write for invoice files.
package invoice

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod is how an invoice was settled.
type PaymentMethod string

const (
	PaymentATM      PaymentMethod = "atm"
	PaymentTransfer PaymentMethod = "transfer"
)

// NormalizePaymentMethod maps a raw token onto a known payment method.
// Anything unrecognized falls back to ATM.
func NormalizePaymentMethod(raw string) PaymentMethod {
	switch PaymentMethod(raw) {
	case PaymentATM, PaymentTransfer:
		return PaymentMethod(raw)
	default:
		return PaymentATM
	}
}

// Item is a single invoice line: quantity of a product at a unit price.
type Item struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // unit price in whole đồng
}

// Amount returns the line amount before tax.
func (it Item) Amount() int64 {
	return it.Price * int64(it.Quantity)
}

// Invoice is one tax document, synthesized or original.
type Invoice struct {
	ID              string          `json:"invoice_id"`
	Date            string          `json:"date"` // dd/mm/yyyy
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Items           []Item          `json:"items"`
	Discount        int64           `json:"discount"`
	PaymentDiscount int64           `json:"payment_discount"`
	VATRate         decimal.Decimal `json:"vat_rate"`

	// FinalTotal is derived by the spreadsheet writer from items and VAT
	// rate. Builders leave it at zero.
	FinalTotal int64 `json:"final_total"`
}

// Subtotal returns the pre-tax sum of all line amounts minus discounts.
func (inv *Invoice) Subtotal() int64 {
	var sum int64
	for _, it := range inv.Items {
		sum += it.Amount()
	}
	return sum - inv.Discount - inv.PaymentDiscount
}

// ComputeTotal returns the post-tax total the writer will record:
// subtotal grossed up by the VAT rate, rounded to whole đồng.
func (inv *Invoice) ComputeTotal() int64 {
	return PostTaxTotal(inv.Subtotal(), inv.VATRate)
}

// PostTaxTotal grosses a pre-tax subtotal up by rate and rounds half away
// from zero to whole đồng.
func PostTaxTotal(subtotal int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(1).Add(rate)).
		Round(0).
		IntPart()
}
