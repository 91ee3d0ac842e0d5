package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/netconsulting/balancesheet/pkg/db/models"
)

// sumifFormula sums income and expense columns for rows whose position
// matches the label in the referenced cell.
func sumifFormula(labelCell string) string {
	return fmt.Sprintf(
		"=SUMIF($D$14:$D$999,%s,$E$14:$E$999)+SUMIF($D$14:$D$999,%s,$F$14:$F$999)",
		labelCell, labelCell,
	)
}

type labelledCell struct {
	label string
	cell  string
}

var fixedCostsLeft = []labelledCell{
	{"Bank", "D2"},
	{"Betriebsratsumlage", "D3"},
	{"Betriebskosten Garagenplatz A1/12", "D4"},
	{"Betriebskosten Garagenplatz A3/17", "D5"},
	{"Internet", "D6"},
	{"OBS-Haushaltsabgabe", "D7"},
}

var fixedCostsRight = []labelledCell{
	{"Reparaturrücklage Garagenplatz A1/12", "G2"},
	{"Reparaturrücklage Garagenplatz A3/17", "G3"},
	{"Strom", "G4"},
	{"Telefon", "G5"},
	{"Versicherung", "G6"},
	{"Wasser/Heizung", "G7"},
}

var generalExpensesLeft = []labelledCell{
	{"Arbeitssuche", "J2"},
	{"Auto", "J3"},
	{"Digitale Arbeitsmittel", "J4"},
	{"Essen", "J5"},
	{"Fachliteratur", "J6"},
	{"Fortbildung", "J7"},
}

var generalExpensesRight = []labelledCell{
	{"Fun", "M2"},
	{"Kammer", "M3"},
	{"Klimaanlage", "M4"},
	{"Medizin", "M5"},
	{"Shop", "M6"},
	{"Steuerberater", "M7"},
}

var passiveLocations = []labelledCell{
	{"Hollgasse 1/1", "P3"},
	{"Hollgasse 1/54", "P4"},
	{"Stipcakgasse 8", "P5"},
}

var overviewColumnWidths = map[string]float64{
	"A": 15, "B": 15, "C": 10, "D": 35, "E": 15, "F": 15,
	"G": 35, "H": 15, "I": 3, "J": 25, "K": 15, "L": 3,
	"M": 20, "N": 15, "O": 3, "P": 20, "Q": 12, "R": 12,
	"S": 3, "T": 20, "U": 15,
}

type overviewStyles struct {
	*sheetStyles
	red      int
	green    int
	cyan     int
	yellow   int
	purple   int
	blue     int
	currency int
	percent  int
}

func newOverviewStyles(f *excelize.File) (*overviewStyles, error) {
	base, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	fill := func(color string, font *excelize.Font) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Font: font,
		})
	}

	styles := &overviewStyles{sheetStyles: base}
	if styles.red, err = fill("FF0000", nil); err != nil {
		return nil, err
	}
	if styles.green, err = fill("00FF00", nil); err != nil {
		return nil, err
	}
	if styles.cyan, err = fill("00FFFF", nil); err != nil {
		return nil, err
	}
	if styles.yellow, err = fill("FFFF00", nil); err != nil {
		return nil, err
	}
	if styles.purple, err = fill("FF00FF", nil); err != nil {
		return nil, err
	}
	if styles.blue, err = fill("0000FF", &excelize.Font{Color: "FFFFFF"}); err != nil {
		return nil, err
	}

	currencyFmt := "#,##0.00 [$€]"
	if styles.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt}); err != nil {
		return nil, err
	}

	percentFmt := "0.00%"
	if styles.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt}); err != nil {
		return nil, err
	}

	return styles, nil
}

// RenderOverview builds the whole-year workbook: one sheet per month
// with the fixed summary header block and day-grouped entry rows.
func RenderOverview(rows []models.LedgerEntry, year int, foodBase decimal.Decimal) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := newOverviewStyles(f)
	if err != nil {
		return nil, err
	}

	byMonth := map[time.Month][]models.LedgerEntry{}
	for _, row := range rows {
		month := row.OrderDate.Month()
		byMonth[month] = append(byMonth[month], row)
	}

	for month := time.January; month <= time.December; month++ {
		sheet := MonthName(month)
		if month == time.January {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}

		if err := writeOverviewHeader(f, sheet, styles, foodBase); err != nil {
			return nil, err
		}
		if err := writeOverviewEntries(f, sheet, styles, byMonth[month]); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeOverviewHeader(f *excelize.File, sheet string, styles *overviewStyles, foodBase decimal.Decimal) error {
	type section struct {
		from, to string
		label    string
		style    int
	}
	sections := []section{
		{"A1", "B1", "Zusammenfassung", styles.red},
		{"D1", "E1", "Fixkosten", styles.red},
		{"G1", "H1", "Fixkosten", styles.red},
		{"J1", "K1", "Allgemeine Ausgaben", styles.red},
		{"M1", "N1", "Allgemeine Ausgaben", styles.red},
		{"P1", "R1", "Passive monatliche(s) Einkommen/Ausgaben", styles.red},
		{"T1", "U1", "Jährliches Einkommen/Ausgaben", styles.blue},
	}
	for _, s := range sections {
		if err := f.MergeCell(sheet, s.from, s.to); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, s.from, s.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, s.from, s.to, s.style); err != nil {
			return err
		}
	}

	// Monthly summary block.
	summary := []struct {
		label   string
		cellRef string
		formula string
		style   int
	}{
		{"Einkommen", "B2", "=SUM(E14:E999)", styles.green},
		{"Ausgaben", "B3", "=SUM(F14:F999)", styles.cyan},
		{"Erspartes", "B4", "=B2+B3", styles.yellow},
	}
	for idx, s := range summary {
		labelCell := fmt.Sprintf("A%d", idx+2)
		if err := f.SetCellValue(sheet, labelCell, s.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, s.style); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, s.cellRef, s.formula); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, s.cellRef, s.cellRef, styles.currency); err != nil {
			return err
		}
	}

	// Food budget block.
	f.SetCellValue(sheet, "A5", "Basis für Essen/Monat")
	f.SetCellStyle(sheet, "A5", "A5", styles.yellow)
	f.SetCellValue(sheet, "B5", foodBase.InexactFloat64())
	f.SetCellStyle(sheet, "B5", "B5", styles.currency)

	f.SetCellValue(sheet, "A6", "Verbleibendes Essensgeld/Monat")
	f.SetCellStyle(sheet, "A6", "A6", styles.purple)
	f.SetCellFormula(sheet, "B6", "=B5+K5")
	f.SetCellStyle(sheet, "B6", "B6", styles.currency)

	f.SetCellValue(sheet, "A7", "Essensgeld Durchschnitt/Tag bis Monatsende")
	f.SetCellStyle(sheet, "A7", "A7", styles.purple)
	f.SetCellFormula(sheet, "B7", "=B6/(EOMONTH(TODAY(),0)-TODAY()+1)")
	f.SetCellStyle(sheet, "B7", "B7", styles.currency)

	// SUMIF groups.
	groups := [][]labelledCell{fixedCostsLeft, fixedCostsRight, generalExpensesLeft, generalExpensesRight}
	valueCols := []string{"E", "H", "K", "N"}
	for g, group := range groups {
		for _, lc := range group {
			if err := f.SetCellValue(sheet, lc.cell, lc.label); err != nil {
				return err
			}
			valueCell := valueCols[g] + lc.cell[1:]
			if err := f.SetCellFormula(sheet, valueCell, sumifFormula(lc.cell)); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, valueCell, valueCell, styles.currency); err != nil {
				return err
			}
		}
	}

	// Passive income block.
	f.SetCellValue(sheet, "Q2", "Einnahmen")
	f.SetCellStyle(sheet, "Q2", "Q2", styles.bold)
	f.SetCellValue(sheet, "R2", "Ausgaben")
	f.SetCellStyle(sheet, "R2", "R2", styles.bold)
	for _, lc := range passiveLocations {
		f.SetCellValue(sheet, lc.cell, lc.label)
		f.SetCellValue(sheet, "Q"+lc.cell[1:], 0)
		f.SetCellValue(sheet, "R"+lc.cell[1:], 0)
	}

	// Yearly block spanning all month sheets.
	yearly := []struct {
		label   string
		formula string
		style   int
		fmt     int
	}{
		{"Einkommen", "=SUM(Jänner:Dezember!B2)", styles.green, styles.currency},
		{"Ausgaben", "=SUM(Jänner:Dezember!B3)", styles.cyan, styles.currency},
		{"Ersparnis", "=SUM(Jänner:Dezember!B4)", styles.yellow, styles.currency},
		{"% Erspartes", "=U4/U2", styles.yellow, styles.percent},
		{"% Ausgaben", "=U3/U2", styles.yellow, styles.percent},
	}
	for idx, y := range yearly {
		labelCell := fmt.Sprintf("T%d", idx+2)
		valueCell := fmt.Sprintf("U%d", idx+2)
		if err := f.SetCellValue(sheet, labelCell, y.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, y.style); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, valueCell, y.formula); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, valueCell, valueCell, y.fmt); err != nil {
			return err
		}
	}

	// Data header row.
	dataHeaders := []string{"wochentag", "datum", "person", "position", "einnahmen", "ausgaben", "location", "comment"}
	for idx, header := range dataHeaders {
		if err := f.SetCellValue(sheet, cell(idx+1, 12), header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cell(1, 12), cell(len(dataHeaders), 12), styles.bold); err != nil {
		return err
	}

	for col, width := range overviewColumnWidths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return freezeRows(f, sheet, 12)
}

func writeOverviewEntries(f *excelize.File, sheet string, styles *overviewStyles, rows []models.LedgerEntry) error {
	row := 13
	var currentDate time.Time

	for _, entry := range rows {
		if !entry.OrderDate.Equal(currentDate) {
			currentDate = entry.OrderDate

			if err := f.SetCellValue(sheet, cell(1, row), entry.OrderDate.Weekday().String()); err != nil {
				return err
			}
			f.SetCellValue(sheet, cell(2, row), entry.OrderDate)
			f.SetCellStyle(sheet, cell(2, row), cell(2, row), styles.date)
			row++
		}

		f.SetCellValue(sheet, cell(3, row), entry.Who)
		f.SetCellValue(sheet, cell(4, row), entry.Position)

		if entry.Income.Valid && entry.Income.Decimal.IsPositive() {
			f.SetCellValue(sheet, cell(5, row), entry.Income.Decimal.InexactFloat64())
			f.SetCellStyle(sheet, cell(5, row), cell(5, row), styles.currency)
		}
		if entry.Expense.Valid && entry.Expense.Decimal.IsPositive() {
			f.SetCellValue(sheet, cell(6, row), entry.Expense.Decimal.Neg().InexactFloat64())
			f.SetCellStyle(sheet, cell(6, row), cell(6, row), styles.currency)
		}

		if entry.Location != nil {
			f.SetCellValue(sheet, cell(7, row), *entry.Location)
		}
		if entry.Comment != nil {
			f.SetCellValue(sheet, cell(8, row), *entry.Comment)
		}

		row++
	}

	return nil
}
