package reports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/netconsulting/balancesheet/pkg/config"
	"github.com/netconsulting/balancesheet/pkg/db/models"
	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
	"github.com/netconsulting/balancesheet/pkg/logger"
)

const parkingLocationPrefix = "Stipcakgasse 8"

// Generator runs one report end to end: fetch, classify, aggregate,
// render, save. No file is written when the year has no rows.
type Generator struct {
	repo   Repository
	logg   *logger.Logger
	cfg    config.ReportConfig
	outDir string
	now    func() time.Time
}

// NewGenerator wires a report generator. outDir empty means the
// working directory.
func NewGenerator(repo Repository, logg *logger.Logger, cfg config.ReportConfig, outDir string) (*Generator, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &Generator{
		repo:   repo,
		logg:   logg,
		cfg:    cfg,
		outDir: outDir,
		now:    time.Now,
	}, nil
}

func (g *Generator) year(year int) int {
	if year > 0 {
		return year
	}
	return g.now().Year()
}

// Overview writes the whole-year workbook with one sheet per month.
func (g *Generator) Overview(ctx context.Context, year int) (string, error) {
	year = g.year(year)

	rows, err := g.repo.ByYear(ctx, year)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", g.noData(ctx, "overview", fmt.Sprintf("no entries found for %d", year))
	}

	g.info(ctx, "overview", fmt.Sprintf("rendering yearly overview for %d", year), len(rows))

	f, err := RenderOverview(rows, year, g.cfg.FoodMonthlyBase)
	if err != nil {
		return "", err
	}
	return g.save(f, fmt.Sprintf("einnahmen_ausgaben_%d.xlsx", year))
}

// Rental writes the statement for one apartment location token.
func (g *Generator) Rental(ctx context.Context, locationToken string, year int) (string, error) {
	year = g.year(year)

	location, filter, err := ParseLocationToken(locationToken)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location")
	}

	rows, err := g.repo.ByLocationYear(ctx, location, year)
	if err != nil {
		return "", err
	}
	rows = filterTaxable(rows, filter)
	if len(rows) == 0 {
		return "", g.noData(ctx, "rental", fmt.Sprintf("no entries found for %s in %d", location, year))
	}

	agg := Aggregate(rows, RentalProfile())
	g.info(ctx, "rental", fmt.Sprintf("rendering rental statement for %s %d", location, year), agg.EntryCount())

	f, err := RenderRental(agg, BaseToken(locationToken), year)
	if err != nil {
		return "", err
	}
	return g.save(f, fmt.Sprintf("%s_%d.xlsx", strings.ToLower(BaseToken(locationToken)), year))
}

// Parking writes the parking lot statement.
func (g *Generator) Parking(ctx context.Context, year int) (string, error) {
	year = g.year(year)

	rows, err := g.repo.ByLocationPrefixYear(ctx, parkingLocationPrefix, year)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", g.noData(ctx, "parking", fmt.Sprintf("no parking entries found for %d", year))
	}

	agg := Aggregate(rows, ParkingProfile())
	g.info(ctx, "parking", fmt.Sprintf("rendering parking statement for %d", year), agg.EntryCount())

	f, err := RenderParking(agg, year)
	if err != nil {
		return "", err
	}
	return g.save(f, fmt.Sprintf("stipcakgasse_%d.xlsx", year))
}

// TaxReturn writes the Arbeitnehmerveranlagung worksheet for one person.
func (g *Generator) TaxReturn(ctx context.Context, person string, year int) (string, error) {
	year = g.year(year)

	if person == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "person is required")
	}
	person = strings.ToUpper(person[:1]) + strings.ToLower(person[1:])

	rows, err := g.repo.TaxableByPersonYear(ctx, person, year)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", g.noData(ctx, "tax_return", fmt.Sprintf("no tax entries found for %s in %d", person, year))
	}

	agg := Aggregate(rows, TaxProfile())
	if agg.EntryCount() == 0 {
		return "", g.noData(ctx, "tax_return", fmt.Sprintf("no deductible entries for %s in %d", person, year))
	}
	g.info(ctx, "tax_return", fmt.Sprintf("rendering tax worksheet for %s %d", person, year), agg.EntryCount())

	f, err := RenderTaxReturn(agg, person, year)
	if err != nil {
		return "", err
	}
	return g.save(f, fmt.Sprintf("%s_arbeitnehmerveranlagung_%d.xlsx", strings.ToLower(person), year))
}

func (g *Generator) save(f *excelize.File, name string) (string, error) {
	path := name
	if g.outDir != "" {
		path = filepath.Join(g.outDir, name)
	}
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func (g *Generator) noData(ctx context.Context, report, msg string) error {
	if g.logg != nil {
		g.logg.Warn(g.logg.WithReport(ctx, report), msg)
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, msg)
}

func (g *Generator) info(ctx context.Context, report, msg string, entryCount int) {
	if g.logg == nil {
		return
	}
	ctx = g.logg.WithReport(ctx, report)
	g.logg.Info(g.logg.WithField(ctx, "entries", entryCount), msg)
}

func filterTaxable(rows []models.LedgerEntry, filter TaxFilter) []models.LedgerEntry {
	if filter == TaxAll {
		return rows
	}
	filtered := rows[:0:0]
	for _, row := range rows {
		taxable := row.Taxable != nil && *row.Taxable
		if (filter == TaxableOnly && taxable) || (filter == NontaxableOnly && !taxable) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
