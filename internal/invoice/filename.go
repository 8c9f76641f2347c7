package invoice

import (
	"fmt"
	"strings"

	"taxtool/internal/currency"
)

const (
	// FileExt is the spreadsheet extension all invoice files carry.
	FileExt = ".xlsx"

	// ExternalPrefix marks externally generated invoice files that must
	// never be touched by the replacement run.
	ExternalPrefix = "Grab - "

	segmentSep = " - "
)

// ParseFilename decodes an invoice file name of the form
// "<invoice_id> - <atm|transfer> - <total>đ.xlsx".
// Unknown payment methods normalize to atm; a malformed name or total
// yields ErrBadFilename.
func ParseFilename(name string) (id string, method PaymentMethod, total int64, err error) {
	stem := strings.TrimSuffix(name, FileExt)
	parts := strings.Split(stem, segmentSep)
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("%w: %q has %d segments, want 3", ErrBadFilename, name, len(parts))
	}

	id = strings.TrimSpace(parts[0])
	method = NormalizePaymentMethod(strings.ToLower(strings.TrimSpace(parts[1])))

	total, perr := currency.ParseAmount(parts[2])
	if perr != nil {
		return "", "", 0, fmt.Errorf("%w: %q: %v", ErrBadFilename, name, perr)
	}
	return id, method, total, nil
}

// BuildFilename is the inverse of ParseFilename.
func BuildFilename(id string, method PaymentMethod, total int64) string {
	return fmt.Sprintf("%s%s%s%s%sđ%s", id, segmentSep, method, segmentSep, currency.FormatAmount(total), FileExt)
}
