package beverage

import "strings"

// NamesReader yields the product names recorded in an invoice file.
// taxtool/internal/invoice.ReadProductNames satisfies it in production;
// tests substitute fakes.
type NamesReader func(path string) ([]string, error)

// Classify reports whether the invoice file at path consists solely of
// catalog beverages, i.e. is one of the synthesized replacement invoices.
//
// Product names are case-folded. Service-fee lines are ignored. The first
// name that matches no beverage keyword disqualifies the file, returning
// the names examined up to and including it. An empty sheet or a read
// failure classifies as not-beverage; errors are never propagated.
func Classify(read NamesReader, path string) (bool, []string) {
	raw, err := read(path)
	if err != nil {
		return false, nil
	}
	if len(raw) == 0 {
		return false, nil
	}

	var seen []string
	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		seen = append(seen, name)
		if containsAny(name, serviceFeeMarkers) {
			continue
		}
		if !containsAny(name, keywords) {
			return false, seen
		}
	}
	if len(seen) == 0 {
		return false, nil
	}
	return true, seen
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
