package entries

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/netconsulting/balancesheet/pkg/db/models"
)

func setupEntriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	incomeexpense := `
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
	transactionLog := `
CREATE TABLE IF NOT EXISTS transaction_log (
  transaction_id TEXT PRIMARY KEY,
  timestamp DATETIME,
  processed INTEGER NOT NULL DEFAULT 0
);`
	require.NoError(t, db.Exec(incomeexpense).Error)
	require.NoError(t, db.Exec(transactionLog).Error)
	return db
}

func newEntry(t *testing.T, db *gorm.DB, orderdate string, who, position string, expense string) *models.LedgerEntry {
	t.Helper()

	date, err := time.Parse("2006-01-02", orderdate)
	require.NoError(t, err)

	entry := &models.LedgerEntry{
		OrderDate: date,
		Who:       who,
		Position:  position,
		Expense:   decimal.NullDecimal{Decimal: decimal.RequireFromString(expense), Valid: true},
		ExportTo:  "auto",
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func TestRepositoryGetByID(t *testing.T) {
	db := setupEntriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := newEntry(t, db, "2025-03-09", "Julia", "essen", "12.50")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Julia", got.Who)
	assert.Equal(t, "essen", got.Position)
	assert.True(t, got.Expense.Valid)
	assert.True(t, got.Expense.Decimal.Equal(decimal.RequireFromString("12.50")))

	missing, err := repo.GetByID(ctx, created.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryListBetween(t *testing.T) {
	db := setupEntriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	newEntry(t, db, "2025-02-28", "Bernd", "essen", "5.00")
	first := newEntry(t, db, "2025-03-01", "Julia", "essen", "7.00")
	second := newEntry(t, db, "2025-03-31", "Julia", "miete", "800.00")
	newEntry(t, db, "2025-04-01", "Bernd", "essen", "9.00")

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	list, err := repo.ListBetween(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestRepositoryListAllOrdering(t *testing.T) {
	db := setupEntriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := newEntry(t, db, "2025-01-15", "Bernd", "strom", "80.00")
	newer := newEntry(t, db, "2025-03-09", "Julia", "essen", "12.50")

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestRepositoryUpdate(t *testing.T) {
	db := setupEntriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	entry := newEntry(t, db, "2025-03-09", "Julia", "essen", "12.50")
	entry.Position = "restaurant"
	require.NoError(t, repo.Update(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "restaurant", got.Position)
}

func TestRepositoryTransactionLog(t *testing.T) {
	db := setupEntriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	missing, err := repo.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.CreateTransaction(ctx, &models.TransactionLog{TransactionID: "tx-1"}))

	log, err := repo.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.False(t, log.Processed)

	require.NoError(t, repo.MarkTransactionProcessed(ctx, "tx-1"))

	log, err = repo.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.True(t, log.Processed)

	err = repo.CreateTransaction(ctx, &models.TransactionLog{TransactionID: "tx-1"})
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
