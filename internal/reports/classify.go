package reports

import (
	"sort"
	"strings"

	"github.com/netconsulting/balancesheet/pkg/enums"
)

// Profile configures the shared category classifier for one report.
// Classification is pure and deterministic: position and comment are
// lowercased and trimmed before any lookup.
type Profile struct {
	// Target is the export_to value that force-routes a row into this
	// report regardless of its position.
	Target enums.ExportTo

	// Mapping resolves a position to a category column. With Substring
	// set, keys match by containment, longest key first; otherwise the
	// whole position must equal a key.
	Mapping map[string]string

	Substring bool

	// CommentFallback retries the mapping against the comment when the
	// position matched nothing.
	CommentFallback bool

	// Exclusions drop a position in auto mode even when the mapping
	// would have matched it.
	Exclusions []string

	// Default is the catch-all category for unmatched rows; empty
	// means unmatched rows carry no category.
	Default string

	// DescribeByComment selects the comment (position as fallback) as
	// the entry description instead of the position.
	DescribeByComment bool

	// special runs before the mapping and wins when it matches.
	special func(position, comment string) (string, bool)
}

// Classify resolves the category for one ledger row. The second return
// is false when the row does not belong on this report.
func (p Profile) Classify(position, comment string, exportTo enums.ExportTo) (string, bool) {
	position = strings.ToLower(strings.TrimSpace(position))
	comment = strings.ToLower(strings.TrimSpace(comment))

	switch {
	case exportTo == enums.ExportToNone:
		return "", false
	case exportTo.IsTarget() && exportTo != p.Target:
		return "", false
	case exportTo == p.Target || exportTo == enums.ExportToBoth:
		if category, ok := p.lookup(position, comment); ok {
			return category, true
		}
		if p.Default != "" {
			return p.Default, true
		}
		return "", false
	}

	// auto: exclusions win over everything.
	for _, excluded := range p.Exclusions {
		if position == excluded {
			return "", false
		}
	}
	if category, ok := p.lookup(position, comment); ok {
		return category, true
	}
	if p.Default != "" {
		return p.Default, true
	}
	return "", false
}

func (p Profile) lookup(position, comment string) (string, bool) {
	if p.special != nil {
		if category, ok := p.special(position, comment); ok {
			return category, true
		}
	}

	if !p.Substring {
		category, ok := p.Mapping[position]
		return category, ok
	}

	if category, ok := matchSubstring(p.Mapping, position); ok {
		return category, true
	}
	if p.CommentFallback {
		return matchSubstring(p.Mapping, comment)
	}
	return "", false
}

// matchSubstring prefers the longest matching key so a specific label
// like "digitale arbeitsmittel" beats its "arbeitsmittel" substring.
func matchSubstring(mapping map[string]string, text string) (string, bool) {
	if text == "" {
		return "", false
	}
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		if strings.Contains(text, key) {
			return mapping[key], true
		}
	}
	return "", false
}

// rentalExclusions lists the rental and parking labels that never
// belong on the personal tax report.
var rentalExclusions = []string{
	"mieteinkommen", "garage a3/17", "garage a1/12",
	"reparaturrücklage garage a3/17", "reparaturrücklage garage a1/12",
	"betriebskosten garage a3/17", "betriebskosten garage a1/12",
	"wasser/heizung", "haushaltsversicherung", "hausverwaltung",
	"strom", "internet", "klimaanlage", "obs haushaltsabgabe",
	"rechtsschutzversicherung",
}

// RentalProfile classifies rows for the apartment rental statements.
func RentalProfile() Profile {
	return Profile{
		Target: enums.ExportToHollgasse,
		Mapping: map[string]string{
			"mieteinkommen":            "mieteinkommen",
			"wasser/heizung":           "wasser/heizung",
			"haushaltsversicherung":    "haushaltsversicherung",
			"hausverwaltung":           "hausverwaltung",
			"strom":                    "strom",
			"internet":                 "internet",
			"klimaanlage":              "klimaanlage",
			"obs haushaltsabgabe":      "obs haushaltsabgabe",
			"obs_haushaltsabgabe":      "obs haushaltsabgabe",
			"rechtsschutzversicherung": "rechtsschutzversicherung",
			"steuerberater":            "steuerberater",
			"bank":                     "bank",
		},
		special: func(position, comment string) (string, bool) {
			// A generic insurance row is household insurance unless the
			// comment marks it as legal-protection insurance.
			if position != "versicherung" {
				return "", false
			}
			if strings.Contains(comment, "rechtsschutz") {
				return "rechtsschutzversicherung", true
			}
			return "haushaltsversicherung", true
		},
	}
}

// ParkingProfile classifies rows for the parking lot statement.
func ParkingProfile() Profile {
	return Profile{
		Target: enums.ExportToHollgasse,
		Mapping: map[string]string{
			"mieteinkommen":                   "mieteinkommen",
			"garage a3/17":                    "garage a3/17",
			"garage_a3_17":                    "garage a3/17",
			"garage a1/12":                    "garage a1/12",
			"garage_a1_12":                    "garage a1/12",
			"reparaturrücklage a3/17":         "reparaturrücklage a3/17",
			"reparaturruecklage_garage_a3_17": "reparaturrücklage a3/17",
			"reparaturrücklage a1/12":         "reparaturrücklage a1/12",
			"reparaturruecklage_garage_a1_12": "reparaturrücklage a1/12",
			"betriebskosten a3/17":            "betriebskosten a3/17",
			"betriebskosten_garage_a3_17":     "betriebskosten a3/17",
			"betriebskosten a1/12":            "betriebskosten a1/12",
			"betriebskosten_garage_a1_12":     "betriebskosten a1/12",
		},
	}
}

// TaxProfile classifies rows for the Arbeitnehmerveranlagung worksheet.
func TaxProfile() Profile {
	return Profile{
		Target:            enums.ExportToArbeitnehmerveranlagung,
		Substring:         true,
		CommentFallback:   true,
		Exclusions:        rentalExclusions,
		Default:           "sonderausgaben",
		DescribeByComment: true,
		Mapping: map[string]string{
			"kurse":                  "kurse",
			"fortbildung":            "kurse",
			"schulung":               "kurse",
			"literatur":              "literatur",
			"fachliteratur":          "literatur",
			"bücher":                 "literatur",
			"kammer":                 "kammer",
			"arbeiterkammer":         "kammer",
			"gesundheit":             "gesundheit",
			"medizin":                "gesundheit",
			"pharmacy":               "gesundheit",
			"arbeitssuche":           "arbeitssuche",
			"bewerbung":              "arbeitssuche",
			"kleinmaterial":          "anla/kleinmat",
			"arbeitsmittel":          "anla/kleinmat",
			"auto":                   "anla/kleinmat",
			"verkehrsmittel":         "anla/kleinmat",
			"sonderausgaben":         "sonderausgaben",
			"spende":                 "sonderausgaben",
			"betriebsratsumlage":     "betriebsratsumlage",
			"betriebsrat":            "betriebsratsumlage",
			"wohnraumschaffung":      "wohnraumschaffung",
			"homeoffice":             "homeoffice pauschale",
			"steuerberater":          "steuerberater",
			"digitale arbeitsmittel": "digitale arbeitsmittel",
			"laptop":                 "digitale arbeitsmittel",
			"computer":               "digitale arbeitsmittel",
			"telefon":                "digitale arbeitsmittel",
			"zusatzpension":          "zusatzpension",
			"zustzpension":           "zusatzpension",
		},
	}
}
