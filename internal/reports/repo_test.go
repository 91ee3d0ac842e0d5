package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/netconsulting/balancesheet/pkg/db/models"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS incomeexpense (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderdate DATE NOT NULL,
  who TEXT NOT NULL,
  position TEXT NOT NULL,
  income NUMERIC,
  expense NUMERIC,
  location TEXT,
  comment TEXT,
  taxable INTEGER,
  export_to TEXT NOT NULL DEFAULT 'auto',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func insertRow(t *testing.T, db *gorm.DB, date, who, position, location string, taxable *bool, expense string) *models.LedgerEntry {
	t.Helper()

	orderdate, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	entry := &models.LedgerEntry{
		OrderDate: orderdate,
		Who:       who,
		Position:  position,
		Expense:   amount(expense),
		Taxable:   taxable,
		ExportTo:  "auto",
	}
	if location != "" {
		entry.Location = &location
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func boolPtr(v bool) *bool { return &v }

func TestRepositoryByYear(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertRow(t, db, "2024-12-31", "Bernd", "strom", "", nil, "10.00")
	second := insertRow(t, db, "2025-02-01", "Julia", "essen", "", nil, "20.00")
	first := insertRow(t, db, "2025-01-15", "Bernd", "strom", "", nil, "30.00")
	insertRow(t, db, "2026-01-01", "Bernd", "strom", "", nil, "40.00")

	rows, err := repo.ByYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Ordered by orderdate then id.
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
}

func TestRepositoryByLocationYear(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertRow(t, db, "2025-03-01", "Bernd", "strom", "Hollgasse 1/54", nil, "80.00")
	insertRow(t, db, "2025-03-02", "Bernd", "strom", "Hollgasse 1/1", nil, "70.00")
	insertRow(t, db, "2025-03-03", "Bernd", "strom", "", nil, "60.00")

	rows, err := repo.ByLocationYear(ctx, "Hollgasse 1/54", 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hollgasse 1/54", *rows[0].Location)
}

func TestRepositoryByLocationPrefixYear(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertRow(t, db, "2025-03-01", "Bernd", "garage a3/17", "Stipcakgasse 8/1", nil, "95.00")
	insertRow(t, db, "2025-03-02", "Bernd", "garage a1/12", "Stipcakgasse 8/2", nil, "90.00")
	insertRow(t, db, "2025-03-03", "Bernd", "strom", "Hollgasse 1/54", nil, "80.00")

	rows, err := repo.ByLocationPrefixYear(ctx, "Stipcakgasse 8", 2025)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRepositoryTaxableByPersonYear(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertRow(t, db, "2025-03-01", "Bernd", "fachliteratur", "", boolPtr(true), "49.90")
	insertRow(t, db, "2025-03-02", "Bernd", "essen", "", boolPtr(false), "12.00")
	insertRow(t, db, "2025-03-03", "Bernd", "spende", "", nil, "20.00")
	insertRow(t, db, "2025-03-04", "Julia", "kurse", "", boolPtr(true), "200.00")

	rows, err := repo.TaxableByPersonYear(ctx, "Bernd", 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fachliteratur", rows[0].Position)
}
