package reports

import (
	"fmt"
	"strings"
)

// TaxFilter narrows a rental statement to taxable or non-taxable rows.
type TaxFilter int

const (
	TaxAll TaxFilter = iota
	TaxableOnly
	NontaxableOnly
)

// ParseLocationToken resolves a command line location token into the
// stored location string plus an optional taxable filter suffix.
// "Hollgasse_1_54" becomes "Hollgasse 1/54"; "Hollgasse_1_54:taxable"
// additionally restricts to rows flagged taxable.
func ParseLocationToken(token string) (string, TaxFilter, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", TaxAll, fmt.Errorf("location token is empty")
	}

	filter := TaxAll
	if base, suffix, ok := strings.Cut(token, ":"); ok {
		switch strings.ToLower(suffix) {
		case "taxable":
			filter = TaxableOnly
		case "nontaxable":
			filter = NontaxableOnly
		default:
			return "", TaxAll, fmt.Errorf("unknown location filter %q", suffix)
		}
		token = base
	}

	// Hollgasse_1_54 -> Hollgasse 1/54; anything else passes through.
	parts := strings.Split(token, "_")
	if len(parts) == 3 {
		return fmt.Sprintf("%s %s/%s", parts[0], parts[1], parts[2]), filter, nil
	}
	return token, filter, nil
}

// BaseToken strips the filter suffix for use in output file names.
func BaseToken(token string) string {
	base, _, _ := strings.Cut(token, ":")
	return base
}
