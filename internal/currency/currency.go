// Package currency parses and renders Vietnamese đồng amounts as they appear
// in invoice file names, e.g. "1.234.567đ".
package currency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotAnAmount is returned when a token does not contain a parseable amount.
var ErrNotAnAmount = errors.New("not a monetary amount")

// ParseAmount extracts an integer đồng amount from a formatted token.
// Both "." and "," are accepted as thousands separators and the "đ" suffix
// is ignored.
func ParseAmount(token string) (int64, error) {
	s := strings.TrimSpace(token)
	s = strings.ReplaceAll(s, "đ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotAnAmount, token)
	}
	return n, nil
}

// FormatAmount renders an amount with "." grouping every three digits,
// the inverse of ParseAmount: 1234567 -> "1.234.567".
func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
