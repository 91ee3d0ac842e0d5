package summary

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository answers scalar aggregates computed directly in the store.
// Date ranges are half-open: from <= orderdate < to.
type Repository interface {
	SumIncome(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumExpense(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumFoodExpense(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumFoodNet(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumPositionIncome(ctx context.Context, position string, from, to time.Time) (decimal.Decimal, error)
	SumFoodNetForPerson(ctx context.Context, who string, from, to time.Time) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a summary repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SumIncome(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.scalar(ctx, `
SELECT COALESCE(SUM(income), 0)
FROM incomeexpense
WHERE orderdate >= ? AND orderdate < ?`, from, to)
}

func (r *repository) SumExpense(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.scalar(ctx, `
SELECT COALESCE(SUM(expense), 0)
FROM incomeexpense
WHERE orderdate >= ? AND orderdate < ?`, from, to)
}

func (r *repository) SumFoodExpense(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.scalar(ctx, `
SELECT COALESCE(SUM(expense), 0)
FROM incomeexpense
WHERE LOWER(position) = 'essen'
AND orderdate >= ? AND orderdate < ?`, from, to)
}

func (r *repository) SumFoodNet(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.scalar(ctx, `
SELECT COALESCE(SUM(expense), 0) - COALESCE(SUM(income), 0)
FROM incomeexpense
WHERE LOWER(position) = 'essen'
AND orderdate >= ? AND orderdate < ?`, from, to)
}

func (r *repository) SumPositionIncome(ctx context.Context, position string, from, to time.Time) (decimal.Decimal, error) {
	return r.scalar(ctx, `
SELECT COALESCE(SUM(income), 0)
FROM incomeexpense
WHERE LOWER(position) = LOWER(?)
AND orderdate >= ? AND orderdate < ?`, position, from, to)
}

func (r *repository) SumFoodNetForPerson(ctx context.Context, who string, from, to time.Time) (decimal.Decimal, error) {
	return r.scalar(ctx, `
SELECT COALESCE(SUM(expense), 0) - COALESCE(SUM(income), 0)
FROM incomeexpense
WHERE LOWER(position) = 'essen'
AND who = ?
AND orderdate >= ? AND orderdate < ?`, who, from, to)
}

// scalar runs a single-value aggregate query. Sums are scanned through
// text so the numeric value reaches decimal without a float detour.
func (r *repository) scalar(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	row := r.db.WithContext(ctx).Raw(query, args...).Row()
	if err := row.Err(); err != nil {
		return decimal.Zero, err
	}

	var raw sql.NullString
	if err := row.Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid || raw.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw.String)
}
