package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/netconsulting/balancesheet/pkg/enums"
)

// LedgerEntry is one income or expense event in the household ledger.
// At most one of Income/Expense is meaningfully non-zero per row; the
// report aggregation derives a single signed amount from the pair.
type LedgerEntry struct {
	ID        int64               `gorm:"column:id;primaryKey;autoIncrement"`
	OrderDate time.Time           `gorm:"column:orderdate;type:date;not null"`
	Who       string              `gorm:"column:who;not null"`
	Position  string              `gorm:"column:position;not null"`
	Income    decimal.NullDecimal `gorm:"column:income;type:numeric(16,2)"`
	Expense   decimal.NullDecimal `gorm:"column:expense;type:numeric(16,2)"`
	Location  *string             `gorm:"column:location"`
	Comment   *string             `gorm:"column:comment"`
	Taxable   *bool               `gorm:"column:taxable"`
	ExportTo  enums.ExportTo      `gorm:"column:export_to;default:auto"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical table name used by every report query.
func (LedgerEntry) TableName() string {
	return "incomeexpense"
}
