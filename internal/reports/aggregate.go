package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/netconsulting/balancesheet/pkg/db/models"
)

// ReportEntry is one classified ledger row carried into a rendered
// report, in input order.
type ReportEntry struct {
	Date        time.Time
	Description string
	Comment     string
	Amount      decimal.Decimal
}

// CategoryData accumulates one category within one month.
type CategoryData struct {
	Total   decimal.Decimal
	Entries []ReportEntry
}

// MonthlyData maps month -> category -> accumulated data. Months and
// categories without classified rows stay absent.
type MonthlyData map[time.Month]map[string]*CategoryData

type monthOrder map[time.Month][]string

// Aggregation is the classified and summed view of one report's rows.
type Aggregation struct {
	Data  MonthlyData
	order monthOrder
}

// Categories lists the categories recorded for a month in input order.
func (a *Aggregation) Categories(month time.Month) []string {
	return a.order[month]
}

// EntryCount counts every classified entry across all months.
func (a *Aggregation) EntryCount() int {
	count := 0
	for _, categories := range a.Data {
		for _, data := range categories {
			count += len(data.Entries)
		}
	}
	return count
}

// SignedAmount flattens the income/expense pair into one signed value:
// positive income wins, otherwise a positive expense negates, otherwise
// the row is worth zero.
func SignedAmount(income, expense decimal.NullDecimal) decimal.Decimal {
	if income.Valid && income.Decimal.IsPositive() {
		return income.Decimal
	}
	if expense.Valid && expense.Decimal.IsPositive() {
		return expense.Decimal.Neg()
	}
	return decimal.Zero
}

// Aggregate classifies rows through the profile and accumulates signed
// amounts per month and category. Input order must already be
// (orderdate, id) and is preserved within each bucket.
func Aggregate(rows []models.LedgerEntry, profile Profile) *Aggregation {
	agg := &Aggregation{
		Data:  MonthlyData{},
		order: monthOrder{},
	}

	for _, row := range rows {
		comment := ""
		if row.Comment != nil {
			comment = *row.Comment
		}

		category, ok := profile.Classify(row.Position, comment, row.ExportTo)
		if !ok {
			continue
		}

		amount := SignedAmount(row.Income, row.Expense)
		month := row.OrderDate.Month()

		categories := agg.Data[month]
		if categories == nil {
			categories = map[string]*CategoryData{}
			agg.Data[month] = categories
		}
		data := categories[category]
		if data == nil {
			data = &CategoryData{}
			categories[category] = data
			agg.order[month] = append(agg.order[month], category)
		}

		description := row.Position
		if profile.DescribeByComment && comment != "" {
			description = comment
		}

		data.Total = data.Total.Add(amount)
		data.Entries = append(data.Entries, ReportEntry{
			Date:        row.OrderDate,
			Description: description,
			Comment:     comment,
			Amount:      amount,
		})
	}

	return agg
}
