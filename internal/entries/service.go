package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/netconsulting/balancesheet/pkg/db/models"
	"github.com/netconsulting/balancesheet/pkg/enums"
	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
)

// TxRunner executes a function inside one database transaction.
// *db.Client satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the ledger read/write operations behind the HTTP API.
type Service interface {
	AddEntry(ctx context.Context, input AddEntryInput) (*models.LedgerEntry, error)
	UpdateEntry(ctx context.Context, id int64, input UpdateEntryInput) (*models.LedgerEntry, error)
	GetEntry(ctx context.Context, id int64) (*models.LedgerEntry, error)
	ListCurrentMonth(ctx context.Context) ([]models.LedgerEntry, error)
	ListAll(ctx context.Context) ([]models.LedgerEntry, error)
}

// AddEntryInput captures one submitted ledger row plus its client
// supplied transaction identifier.
type AddEntryInput struct {
	OrderDate     time.Time
	Who           string
	Position      string
	Income        decimal.NullDecimal
	Expense       decimal.NullDecimal
	Location      *string
	Comment       *string
	Taxable       *bool
	ExportTo      enums.ExportTo
	TransactionID string
}

// UpdateEntryInput carries only the fields present in the submission;
// nil fields leave the stored value untouched.
type UpdateEntryInput struct {
	OrderDate *time.Time
	Who       *string
	Position  *string
	Income    *decimal.NullDecimal
	Expense   *decimal.NullDecimal
	Location  *string
	Comment   *string
	Taxable   *bool
	ExportTo  *enums.ExportTo
}

type service struct {
	repo Repository
	tx   TxRunner
	now  func() time.Time
}

// NewService wires the entries service with its repository and
// transaction runner.
func NewService(repo Repository, tx TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("entries repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) AddEntry(ctx context.Context, input AddEntryInput) (*models.LedgerEntry, error) {
	if input.TransactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction_id is required")
	}
	if input.OrderDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderdate is required")
	}
	if input.Who == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "who is required")
	}
	if input.Position == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position is required")
	}
	if input.ExportTo == "" {
		input.ExportTo = enums.ExportToAuto
	}
	if !input.ExportTo.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid export_to %q", input.ExportTo))
	}

	// A persisted log row always means a committed entry, because the
	// log and the entry share one transaction.
	existing, err := s.repo.GetTransaction(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "transaction already processed").
			WithDetails(map[string]any{"transaction_id": input.TransactionID})
	}

	entry := &models.LedgerEntry{
		OrderDate: input.OrderDate,
		Who:       input.Who,
		Position:  input.Position,
		Income:    input.Income,
		Expense:   input.Expense,
		Location:  input.Location,
		Comment:   input.Comment,
		Taxable:   input.Taxable,
		ExportTo:  input.ExportTo,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateTransaction(ctx, &models.TransactionLog{TransactionID: input.TransactionID}); err != nil {
			if isUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeIdempotency, err, "transaction already processed").
					WithDetails(map[string]any{"transaction_id": input.TransactionID})
			}
			return err
		}
		if err := txRepo.Create(ctx, entry); err != nil {
			return err
		}
		return txRepo.MarkTransactionProcessed(ctx, input.TransactionID)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) UpdateEntry(ctx context.Context, id int64, input UpdateEntryInput) (*models.LedgerEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}

	if input.OrderDate != nil {
		entry.OrderDate = *input.OrderDate
	}
	if input.Who != nil {
		entry.Who = *input.Who
	}
	if input.Position != nil {
		entry.Position = *input.Position
	}
	if input.Income != nil {
		entry.Income = *input.Income
	}
	if input.Expense != nil {
		entry.Expense = *input.Expense
	}
	if input.Location != nil {
		entry.Location = input.Location
	}
	if input.Comment != nil {
		entry.Comment = input.Comment
	}
	if input.Taxable != nil {
		entry.Taxable = input.Taxable
	}
	if input.ExportTo != nil {
		if !input.ExportTo.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid export_to %q", *input.ExportTo))
		}
		entry.ExportTo = *input.ExportTo
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) GetEntry(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}
	return entry, nil
}

func (s *service) ListCurrentMonth(ctx context.Context) ([]models.LedgerEntry, error) {
	from, to := monthRange(s.now())
	return s.repo.ListBetween(ctx, from, to)
}

func (s *service) ListAll(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.repo.ListAll(ctx)
}

func monthRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
