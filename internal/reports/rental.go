package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// rentalCategories fixes the entry order within a month; it mirrors
// the statement's column layout.
var rentalCategories = []string{
	"wasser/heizung",
	"haushaltsversicherung",
	"hausverwaltung",
	"mieteinkommen",
	"strom",
	"internet",
	"obs haushaltsabgabe",
	"klimaanlage",
	"rechtsschutzversicherung",
	"steuerberater",
	"bank",
}

var rentalColumns = map[string]int{
	"mieteinkommen":            5,
	"hausverwaltung":           6,
	"haushaltsversicherung":    7,
	"strom":                    8,
	"wasser/heizung":           9,
	"internet":                 12,
	"klimaanlage":              13,
	"rechtsschutzversicherung": 14,
	"steuerberater":            15,
	"obs haushaltsabgabe":      16,
	"bank":                     17,
}

var rentalHeaders = []string{
	"rechnungsnummer",
	"datum",
	"artikelbeschreibung",
	"ein / aus",
	"mieteinkommen",
	"haus-\nverwaltung",
	"haushalts-\nversicherung",
	"strom",
	"wasser/\nheizung",
	"av",
	"kleinmaterial",
	"internet",
	"klimaanlage",
	"rechtsschutz-\nversicherung",
	"steuerberater",
	"obs haushalts-\nabgabe",
	"bank",
	"comment",
}

var rentalColumnWidths = map[string]float64{
	"A": 18, "B": 12, "C": 25, "D": 12, "E": 10, "F": 12,
	"G": 13, "H": 10, "I": 10, "J": 8, "K": 13, "L": 10,
	"M": 12, "N": 13, "O": 13, "P": 10, "Q": 10, "R": 30,
}

// RenderRental builds the yearly statement workbook for one rental
// apartment.
func RenderRental(agg *Aggregation, locationToken string, year int) (*excelize.File, error) {
	sheet := fmt.Sprintf("steuererklaerung_%s", truncate(strings.ToLower(locationToken), 20))
	title := fmt.Sprintf("Einnahmen und \nAusgaben\nfür das Jahr %d", year)

	return renderStatement(statementLayout{
		sheet:        sheet,
		title:        title,
		titleSpan:    18,
		titleHeight:  60,
		headers:      rentalHeaders,
		headerHeight: 30,
		widths:       rentalColumnWidths,
		categories:   rentalCategories,
		columns:      rentalColumns,
		monthNameCol: 1,
		commentCol:   18,
	}, agg)
}

// statementLayout describes one invoice-numbered statement sheet; the
// rental and parking reports share the shape and differ only here.
type statementLayout struct {
	sheet        string
	title        string
	titleSpan    int
	titleHeight  float64
	headers      []string
	headerHeight float64
	widths       map[string]float64
	categories   []string
	columns      map[string]int
	monthNameCol int
	commentCol   int
}

func renderStatement(layout statementLayout, agg *Aggregation) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", layout.sheet); err != nil {
		return nil, err
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(layout.sheet, cell(1, 1), cell(layout.titleSpan, 1)); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(layout.sheet, cell(1, 1), layout.title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(layout.sheet, cell(1, 1), cell(layout.titleSpan, 1), styles.title); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(layout.sheet, 1, layout.titleHeight); err != nil {
		return nil, err
	}

	for idx, header := range layout.headers {
		if err := f.SetCellValue(layout.sheet, cell(idx+1, 2), header); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(layout.sheet, cell(1, 2), cell(len(layout.headers), 2), styles.header); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(layout.sheet, 2, layout.headerHeight); err != nil {
		return nil, err
	}
	if err := freezeRows(f, layout.sheet, 2); err != nil {
		return nil, err
	}

	for col, width := range layout.widths {
		if err := f.SetColWidth(layout.sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	totals := map[string]decimal.Decimal{}
	grandTotal := decimal.Zero
	invoiceNumber := 1
	row := 3

	for month := time.January; month <= time.December; month++ {
		if err := f.SetCellValue(layout.sheet, cell(layout.monthNameCol, row), MonthName(month)); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(layout.sheet, cell(layout.monthNameCol, row), cell(layout.monthNameCol, row), styles.bold); err != nil {
			return nil, err
		}
		row++

		categories := agg.Data[month]
		for _, category := range layout.categories {
			data := categories[category]
			if data == nil {
				continue
			}

			for _, entry := range data.Entries {
				f.SetCellValue(layout.sheet, cell(1, row), invoiceNumber)
				f.SetCellStyle(layout.sheet, cell(1, row), cell(1, row), styles.invoice)
				invoiceNumber++

				f.SetCellValue(layout.sheet, cell(2, row), entry.Date)
				f.SetCellStyle(layout.sheet, cell(2, row), cell(2, row), styles.date)

				f.SetCellValue(layout.sheet, cell(3, row), entry.Description)

				amount := entry.Amount.InexactFloat64()
				f.SetCellValue(layout.sheet, cell(4, row), amount)
				f.SetCellStyle(layout.sheet, cell(4, row), cell(4, row), styles.currency)
				grandTotal = grandTotal.Add(entry.Amount)

				if col, ok := layout.columns[category]; ok {
					f.SetCellValue(layout.sheet, cell(col, row), amount)
					f.SetCellStyle(layout.sheet, cell(col, row), cell(col, row), styles.currency)
					totals[category] = totals[category].Add(entry.Amount)
				}

				f.SetCellValue(layout.sheet, cell(layout.commentCol, row), entry.Comment)
				row++
			}
		}
	}

	f.SetCellValue(layout.sheet, cell(1, row), "summe")
	f.SetCellStyle(layout.sheet, cell(1, row), cell(1, row), styles.bold)
	f.SetCellValue(layout.sheet, cell(4, row), grandTotal.InexactFloat64())
	f.SetCellStyle(layout.sheet, cell(4, row), cell(4, row), styles.boldCurrency)

	for category, col := range layout.columns {
		total := totals[category]
		if total.IsZero() {
			continue
		}
		f.SetCellValue(layout.sheet, cell(col, row), total.InexactFloat64())
		f.SetCellStyle(layout.sheet, cell(col, row), cell(col, row), styles.boldCurrency)
	}

	return f, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
