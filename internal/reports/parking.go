package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var parkingCategories = []string{
	"mieteinkommen",
	"garage a1/12",
	"garage a3/17",
	"reparaturrücklage a1/12",
	"reparaturrücklage a3/17",
	"betriebskosten a1/12",
	"betriebskosten a3/17",
}

var parkingColumns = map[string]int{
	"mieteinkommen":           5,
	"garage a3/17":            6,
	"reparaturrücklage a3/17": 7,
	"betriebskosten a3/17":    8,
	"garage a1/12":            9,
	"reparaturrücklage a1/12": 10,
	"betriebskosten a1/12":    11,
}

var parkingHeaders = []string{
	"rechnungsnummer",
	"datum",
	"artikelbeschreibung",
	"ein / aus",
	"mieteinkommen",
	"garage\na3/17",
	"reparatur-\nrücklage\na3/17",
	"betriebs-\nkosten\na3/17",
	"garage\na1/12",
	"reparatur-\nrücklage\na1/12",
	"betriebs-\nkosten\na1/12",
	"comment",
}

var parkingColumnWidths = map[string]float64{
	"A": 18, "B": 12, "C": 25, "D": 12, "E": 13, "F": 10,
	"G": 12, "H": 12, "I": 10, "J": 12, "K": 12, "L": 30,
}

// RenderParking builds the yearly statement workbook for the parking
// lots.
func RenderParking(agg *Aggregation, year int) (*excelize.File, error) {
	title := fmt.Sprintf("Einnahmen und \nAusgaben\nfür das Jahr %d\nParkplätze Stipcakgasse 8/1", year)

	return renderStatement(statementLayout{
		sheet:        "parking_stipcakgasse",
		title:        title,
		titleSpan:    12,
		titleHeight:  75,
		headers:      parkingHeaders,
		headerHeight: 45,
		widths:       parkingColumnWidths,
		categories:   parkingCategories,
		columns:      parkingColumns,
		monthNameCol: 2,
		commentCol:   12,
	}, agg)
}
