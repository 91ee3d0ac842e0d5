package reports

import (
	"github.com/xuri/excelize/v2"
)

const (
	currencyFormat = "#,##0.00 [$€-1]"
	dateFormat     = "dd.mm.yyyy"
	invoiceFormat  = "000"
)

// sheetStyles bundles the cell styles shared by the statement sheets.
type sheetStyles struct {
	title        int
	header       int
	bold         int
	date         int
	invoice      int
	currency     int
	boldCurrency int
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	dateFmt := dateFormat
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, err
	}

	invoiceFmt := invoiceFormat
	invoice, err := f.NewStyle(&excelize.Style{CustomNumFmt: &invoiceFmt})
	if err != nil {
		return nil, err
	}

	currencyFmt := currencyFormat
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return nil, err
	}

	boldCurrency, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &currencyFmt,
	})
	if err != nil {
		return nil, err
	}

	return &sheetStyles{
		title:        title,
		header:       header,
		bold:         bold,
		date:         date,
		invoice:      invoice,
		currency:     currency,
		boldCurrency: boldCurrency,
	}, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func freezeRows(f *excelize.File, sheet string, rows int) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      rows,
		TopLeftCell: cell(1, rows+1),
		ActivePane:  "bottomLeft",
	})
}
