package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netconsulting/balancesheet/pkg/db/models"
	"github.com/netconsulting/balancesheet/pkg/enums"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func ledgerRow(date string, position string, income, expense decimal.NullDecimal, exportTo enums.ExportTo, comment string) models.LedgerEntry {
	orderdate, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	row := models.LedgerEntry{
		OrderDate: orderdate,
		Who:       "Bernd",
		Position:  position,
		Income:    income,
		Expense:   expense,
		ExportTo:  exportTo,
	}
	if comment != "" {
		row.Comment = &comment
	}
	return row
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name    string
		income  decimal.NullDecimal
		expense decimal.NullDecimal
		want    string
	}{
		{"income wins", amount("100.00"), decimal.NullDecimal{}, "100.00"},
		{"expense negates", decimal.NullDecimal{}, amount("80.00"), "-80.00"},
		{"income beats expense", amount("100.00"), amount("80.00"), "100.00"},
		{"zero income falls to expense", amount("0"), amount("80.00"), "-80.00"},
		{"both zero", amount("0"), amount("0"), "0"},
		{"both null", decimal.NullDecimal{}, decimal.NullDecimal{}, "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SignedAmount(tc.income, tc.expense)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), got.String())
		})
	}
}

func TestAggregateStromExpense(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-03-05", "Strom", decimal.NullDecimal{}, amount("80.00"), enums.ExportToAuto, ""),
	}

	agg := Aggregate(rows, RentalProfile())

	data := agg.Data[time.March]["strom"]
	require.NotNil(t, data)
	assert.True(t, data.Total.Equal(decimal.RequireFromString("-80.00")), data.Total.String())
	require.Len(t, data.Entries, 1)
	assert.True(t, data.Entries[0].Amount.Equal(decimal.RequireFromString("-80.00")))
}

func TestAggregateSkipsUnclassified(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-03-05", "essen", decimal.NullDecimal{}, amount("12.00"), enums.ExportToAuto, ""),
		ledgerRow("2025-03-06", "strom", decimal.NullDecimal{}, amount("80.00"), enums.ExportToNone, ""),
	}

	agg := Aggregate(rows, RentalProfile())
	assert.Empty(t, agg.Data)
	assert.Zero(t, agg.EntryCount())
}

func TestAggregateTotalsMatchEntries(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-01-05", "strom", decimal.NullDecimal{}, amount("80.00"), enums.ExportToAuto, ""),
		ledgerRow("2025-01-15", "strom", decimal.NullDecimal{}, amount("75.50"), enums.ExportToAuto, ""),
		ledgerRow("2025-01-20", "strom", amount("30.00"), decimal.NullDecimal{}, enums.ExportToAuto, ""),
	}

	agg := Aggregate(rows, RentalProfile())

	data := agg.Data[time.January]["strom"]
	require.NotNil(t, data)

	sum := decimal.Zero
	for _, entry := range data.Entries {
		sum = sum.Add(entry.Amount)
	}
	assert.True(t, data.Total.Equal(sum))
	assert.True(t, data.Total.Equal(decimal.RequireFromString("-125.50")), data.Total.String())
}

func TestAggregatePreservesEntryOrder(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-02-01", "strom", decimal.NullDecimal{}, amount("10.00"), enums.ExportToAuto, "first"),
		ledgerRow("2025-02-10", "strom", decimal.NullDecimal{}, amount("20.00"), enums.ExportToAuto, "second"),
		ledgerRow("2025-02-20", "strom", decimal.NullDecimal{}, amount("30.00"), enums.ExportToAuto, "third"),
	}

	agg := Aggregate(rows, RentalProfile())

	entries := agg.Data[time.February]["strom"].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Comment)
	assert.Equal(t, "second", entries[1].Comment)
	assert.Equal(t, "third", entries[2].Comment)
}

func TestAggregateInsuranceSplitsByComment(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-04-01", "Versicherung", decimal.NullDecimal{}, amount("25.00"), enums.ExportToAuto, "Rechtsschutz"),
		ledgerRow("2025-04-02", "Versicherung", decimal.NullDecimal{}, amount("18.00"), enums.ExportToAuto, "Haushalt"),
	}

	agg := Aggregate(rows, RentalProfile())

	require.NotNil(t, agg.Data[time.April]["rechtsschutzversicherung"])
	require.NotNil(t, agg.Data[time.April]["haushaltsversicherung"])
}

func TestAggregateTaxDescriptionPrefersComment(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-05-03", "Fachliteratur", decimal.NullDecimal{}, amount("49.90"), enums.ExportToAuto, "Go in der Praxis"),
		ledgerRow("2025-05-04", "Spende", decimal.NullDecimal{}, amount("20.00"), enums.ExportToAuto, ""),
	}

	agg := Aggregate(rows, TaxProfile())

	lit := agg.Data[time.May]["literatur"]
	require.NotNil(t, lit)
	assert.Equal(t, "Go in der Praxis", lit.Entries[0].Description)

	spende := agg.Data[time.May]["sonderausgaben"]
	require.NotNil(t, spende)
	assert.Equal(t, "Spende", spende.Entries[0].Description)
}

func TestAggregateAbsentMonthsStayAbsent(t *testing.T) {
	rows := []models.LedgerEntry{
		ledgerRow("2025-06-01", "strom", decimal.NullDecimal{}, amount("80.00"), enums.ExportToAuto, ""),
	}

	agg := Aggregate(rows, RentalProfile())
	assert.Len(t, agg.Data, 1)
	_, ok := agg.Data[time.July]
	assert.False(t, ok)
}
