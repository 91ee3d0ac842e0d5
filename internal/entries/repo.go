package entries

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/netconsulting/balancesheet/pkg/db/models"
)

// Repository manages persistence for ledger entries and the
// transaction log guarding the add endpoint.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.LedgerEntry) error
	GetByID(ctx context.Context, id int64) (*models.LedgerEntry, error)
	Update(ctx context.Context, entry *models.LedgerEntry) error
	ListBetween(ctx context.Context, from, to time.Time) ([]models.LedgerEntry, error)
	ListAll(ctx context.Context) ([]models.LedgerEntry, error)
	GetTransaction(ctx context.Context, transactionID string) (*models.TransactionLog, error)
	CreateTransaction(ctx context.Context, log *models.TransactionLog) error
	MarkTransactionProcessed(ctx context.Context, transactionID string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an entries repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Update(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// ListBetween returns entries with from <= orderdate < to, newest id first.
func (r *repository) ListBetween(ctx context.Context, from, to time.Time) ([]models.LedgerEntry, error) {
	var list []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("orderdate >= ? AND orderdate < ?", from, to).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.LedgerEntry, error) {
	var list []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Order("orderdate DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) GetTransaction(ctx context.Context, transactionID string) (*models.TransactionLog, error) {
	var log models.TransactionLog
	if err := r.db.WithContext(ctx).First(&log, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *repository) CreateTransaction(ctx context.Context, log *models.TransactionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) MarkTransactionProcessed(ctx context.Context, transactionID string) error {
	return r.db.WithContext(ctx).
		Model(&models.TransactionLog{}).
		Where("transaction_id = ?", transactionID).
		Update("processed", true).Error
}
