package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var taxColumns = map[string]int{
	"kurse":                  6,
	"literatur":              7,
	"kammer":                 8,
	"gesundheit":             9,
	"arbeitssuche":           10,
	"anla/kleinmat":          11,
	"sonderausgaben":         12,
	"strom":                  13,
	"betriebsratsumlage":     14,
	"wohnraumschaffung":      15,
	"homeoffice pauschale":   16,
	"steuerberater":          17,
	"digitale arbeitsmittel": 18,
	"zusatzpension":          19,
}

var taxHeaders = []string{
	"datum",
	"artikelbeschreibung",
	"ja/nein",
	"%prozent",
	"ansetzbar",
	"kurse",
	"literatur",
	"kammer",
	"gesundheit",
	"arbeitssuche",
	"anla/\nkleinmat",
	"sonder-\nausgaben",
	"strom",
	"betriebs-\nrats-\numlage",
	"wohnraum-\nschaffung",
	"homeOffice\nPauschale",
	"steuer-\nberater",
	"digitale\narbeits-\nmittel",
	"zusatz-\npension",
}

var taxColumnWidths = map[string]float64{
	"A": 12, "B": 25, "C": 8, "D": 10, "E": 12, "F": 10,
	"G": 10, "H": 10, "I": 10, "J": 10, "K": 10, "L": 10,
	"M": 10, "N": 10, "O": 10, "P": 10, "Q": 10, "R": 10,
	"S": 10,
}

// RenderTaxReturn builds the Arbeitnehmerveranlagung worksheet for one
// person. Amounts land as absolute values; months without qualifying
// rows are skipped entirely.
func RenderTaxReturn(agg *Aggregation, person string, year int) (*excelize.File, error) {
	sheet := fmt.Sprintf("%s_ANV_%d", person, year)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	smallHeader, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Arbeitnehmerveranlagung %s\nfür das Jahr %d", person, year)
	if err := f.MergeCell(sheet, "A1", "T1"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "T1", styles.title); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheet, 1, 45); err != nil {
		return nil, err
	}

	for idx, header := range taxHeaders {
		if err := f.SetCellValue(sheet, cell(idx+1, 2), header); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheet, cell(1, 2), cell(len(taxHeaders), 2), smallHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheet, 2, 45); err != nil {
		return nil, err
	}
	if err := freezeRows(f, sheet, 2); err != nil {
		return nil, err
	}

	for col, width := range taxColumnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	totals := map[string]decimal.Decimal{}
	deductibleTotal := decimal.Zero
	row := 3

	for month := time.January; month <= time.December; month++ {
		categories := agg.Data[month]
		if len(categories) == 0 {
			continue
		}

		f.SetCellValue(sheet, cell(1, row), MonthName(month))
		f.SetCellStyle(sheet, cell(1, row), cell(1, row), styles.bold)
		row++

		for _, category := range agg.Categories(month) {
			for _, entry := range categories[category].Entries {
				amount := entry.Amount.Abs()

				f.SetCellValue(sheet, cell(1, row), entry.Date)
				f.SetCellStyle(sheet, cell(1, row), cell(1, row), styles.date)

				f.SetCellValue(sheet, cell(2, row), entry.Description)

				f.SetCellValue(sheet, cell(5, row), amount.InexactFloat64())
				f.SetCellStyle(sheet, cell(5, row), cell(5, row), styles.currency)
				deductibleTotal = deductibleTotal.Add(amount)

				if col, ok := taxColumns[category]; ok {
					f.SetCellValue(sheet, cell(col, row), amount.InexactFloat64())
					f.SetCellStyle(sheet, cell(col, row), cell(col, row), styles.currency)
					totals[category] = totals[category].Add(amount)
				}

				row++
			}
		}
	}

	f.SetCellValue(sheet, cell(1, row), "SUMME")
	f.SetCellStyle(sheet, cell(1, row), cell(1, row), styles.bold)
	f.SetCellValue(sheet, cell(5, row), deductibleTotal.InexactFloat64())
	f.SetCellStyle(sheet, cell(5, row), cell(5, row), styles.boldCurrency)

	for category, col := range taxColumns {
		total := totals[category]
		if total.IsZero() {
			continue
		}
		f.SetCellValue(sheet, cell(col, row), total.InexactFloat64())
		f.SetCellStyle(sheet, cell(col, row), cell(col, row), styles.boldCurrency)
	}

	return f, nil
}
