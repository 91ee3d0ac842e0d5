package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/netconsulting/balancesheet/pkg/db/models"
)

// Repository fetches the ledger slices the report generators consume.
// All queries order by (orderdate, id), the order the aggregation and
// the rendered entry lists rely on.
type Repository interface {
	ByYear(ctx context.Context, year int) ([]models.LedgerEntry, error)
	ByLocationYear(ctx context.Context, location string, year int) ([]models.LedgerEntry, error)
	ByLocationPrefixYear(ctx context.Context, prefix string, year int) ([]models.LedgerEntry, error)
	TaxableByPersonYear(ctx context.Context, person string, year int) ([]models.LedgerEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ByYear(ctx context.Context, year int) ([]models.LedgerEntry, error) {
	return r.list(ctx, r.yearScope(ctx, year))
}

func (r *repository) ByLocationYear(ctx context.Context, location string, year int) ([]models.LedgerEntry, error) {
	return r.list(ctx, r.yearScope(ctx, year).Where("location = ?", location))
}

func (r *repository) ByLocationPrefixYear(ctx context.Context, prefix string, year int) ([]models.LedgerEntry, error) {
	return r.list(ctx, r.yearScope(ctx, year).Where("location LIKE ?", prefix+"%"))
}

func (r *repository) TaxableByPersonYear(ctx context.Context, person string, year int) ([]models.LedgerEntry, error) {
	return r.list(ctx, r.yearScope(ctx, year).Where("who = ? AND taxable = ?", person, true))
}

func (r *repository) yearScope(ctx context.Context, year int) *gorm.DB {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	return r.db.WithContext(ctx).Where("orderdate >= ? AND orderdate < ?", from, to)
}

func (r *repository) list(ctx context.Context, scope *gorm.DB) ([]models.LedgerEntry, error) {
	var rows []models.LedgerEntry
	if err := scope.Order("orderdate, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
