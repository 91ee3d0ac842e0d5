package enums

import (
	"fmt"
	"strings"
)

// ExportTo routes a ledger entry to the report(s) allowed to include it.
// Stored as text in the export_to column; auto leaves the decision to
// each report's own classification tables.
type ExportTo string

const (
	ExportToAuto                    ExportTo = "auto"
	ExportToHollgasse               ExportTo = "hollgasse"
	ExportToArbeitnehmerveranlagung ExportTo = "arbeitnehmerveranlagung"
	ExportToBoth                    ExportTo = "both"
	ExportToNone                    ExportTo = "none"
)

var validExportTargets = []ExportTo{
	ExportToAuto,
	ExportToHollgasse,
	ExportToArbeitnehmerveranlagung,
	ExportToBoth,
	ExportToNone,
}

// IsValid reports whether the value matches a known routing target.
func (e ExportTo) IsValid() bool {
	for _, candidate := range validExportTargets {
		if candidate == e {
			return true
		}
	}
	return false
}

// IsTarget reports whether the value names a concrete report rather
// than one of the routing modes (auto/both/none).
func (e ExportTo) IsTarget() bool {
	return e == ExportToHollgasse || e == ExportToArbeitnehmerveranlagung
}

// ParseExportTo converts raw input into ExportTo. Empty input means
// the client did not choose a route and defaults to auto.
func ParseExportTo(value string) (ExportTo, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ExportToAuto, nil
	}
	for _, candidate := range validExportTargets {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export target %q", value)
}
