package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/netconsulting/balancesheet/api/responses"
	"github.com/netconsulting/balancesheet/api/validators"
	"github.com/netconsulting/balancesheet/internal/entries"
	"github.com/netconsulting/balancesheet/pkg/db/models"
	"github.com/netconsulting/balancesheet/pkg/enums"
	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
	"github.com/netconsulting/balancesheet/pkg/logger"
)

// entryResponse is the wire form of one ledger row. Dates render as
// plain YYYY-MM-DD, matching the form input format.
type entryResponse struct {
	ID        int64               `json:"id"`
	OrderDate string              `json:"orderdate"`
	Who       string              `json:"who"`
	Position  string              `json:"position"`
	Income    decimal.NullDecimal `json:"income"`
	Expense   decimal.NullDecimal `json:"expense"`
	Location  *string             `json:"location"`
	Comment   *string             `json:"comment"`
	Taxable   *bool               `json:"taxable"`
	ExportTo  enums.ExportTo      `json:"export_to"`
}

func toEntryResponse(entry *models.LedgerEntry) entryResponse {
	return entryResponse{
		ID:        entry.ID,
		OrderDate: entry.OrderDate.Format("2006-01-02"),
		Who:       entry.Who,
		Position:  entry.Position,
		Income:    entry.Income,
		Expense:   entry.Expense,
		Location:  entry.Location,
		Comment:   entry.Comment,
		Taxable:   entry.Taxable,
		ExportTo:  entry.ExportTo,
	}
}

func toEntryResponses(rows []models.LedgerEntry) []entryResponse {
	out := make([]entryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toEntryResponse(&rows[i]))
	}
	return out
}

// EntriesCurrentMonth lists the current calendar month, newest id first.
func EntriesCurrentMonth(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entries service unavailable"))
			return
		}

		rows, err := svc.ListCurrentMonth(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toEntryResponses(rows))
	}
}

// EntriesAll lists every ledger row, orderdate descending.
func EntriesAll(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entries service unavailable"))
			return
		}

		rows, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toEntryResponses(rows))
	}
}

// EntryByID returns a single ledger row or 404.
func EntryByID(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entries service unavailable"))
			return
		}

		id, err := entryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.GetEntry(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toEntryResponse(entry))
	}
}

// EntryAdd creates a ledger row from a form submission. The client
// supplied transaction_id makes retries idempotent.
func EntryAdd(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entries service unavailable"))
			return
		}

		input, err := decodeAddEntryForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.AddEntry(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toEntryResponse(entry))
	}
}

// EntryUpdate applies a partial update; only submitted form fields change.
func EntryUpdate(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entries service unavailable"))
			return
		}

		id, err := entryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := decodeUpdateEntryForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.UpdateEntry(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toEntryResponse(entry))
	}
}

func entryIDParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "entry id must be a positive integer").
			WithDetails(map[string]any{"id": raw})
	}
	return id, nil
}

// addEntryRequest carries the mandatory form fields of a create
// submission through the shared struct validator.
type addEntryRequest struct {
	OrderDate     string `json:"orderdate" validate:"required"`
	Who           string `json:"who" validate:"required"`
	Position      string `json:"position" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

func decodeAddEntryForm(r *http.Request) (entries.AddEntryInput, error) {
	var input entries.AddEntryInput

	if err := validators.ParseForm(r); err != nil {
		return input, err
	}

	var req addEntryRequest
	req.OrderDate, _ = validators.FormString(r, "orderdate")
	req.Who, _ = validators.FormString(r, "who")
	req.Position, _ = validators.FormString(r, "position")
	req.TransactionID, _ = validators.FormString(r, "transaction_id")
	if err := validators.ValidateStruct(req); err != nil {
		return input, err
	}

	orderdate, _, err := validators.FormDate(r, "orderdate")
	if err != nil {
		return input, err
	}

	income, err := validators.FormDecimal(r, "income")
	if err != nil {
		return input, err
	}
	expense, err := validators.FormDecimal(r, "expense")
	if err != nil {
		return input, err
	}
	taxable, err := validators.FormBool(r, "taxable")
	if err != nil {
		return input, err
	}

	exportTo := enums.ExportToAuto
	if raw, ok := validators.FormString(r, "export_to"); ok && raw != "" {
		exportTo, err = enums.ParseExportTo(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid export_to")
		}
	}

	input = entries.AddEntryInput{
		OrderDate:     orderdate,
		Who:           req.Who,
		Position:      req.Position,
		Income:        income,
		Expense:       expense,
		Taxable:       taxable,
		ExportTo:      exportTo,
		TransactionID: req.TransactionID,
	}
	if location, ok := validators.FormString(r, "location"); ok && location != "" {
		input.Location = &location
	}
	if comment, ok := validators.FormString(r, "comment"); ok && comment != "" {
		input.Comment = &comment
	}
	return input, nil
}

func decodeUpdateEntryForm(r *http.Request) (entries.UpdateEntryInput, error) {
	var input entries.UpdateEntryInput

	if err := validators.ParseForm(r); err != nil {
		return input, err
	}

	if orderdate, ok, err := validators.FormDate(r, "orderdate"); err != nil {
		return input, err
	} else if ok {
		input.OrderDate = &orderdate
	}

	if who, ok := validators.FormString(r, "who"); ok {
		input.Who = &who
	}
	if position, ok := validators.FormString(r, "position"); ok {
		input.Position = &position
	}
	if location, ok := validators.FormString(r, "location"); ok {
		input.Location = &location
	}
	if comment, ok := validators.FormString(r, "comment"); ok {
		input.Comment = &comment
	}

	if _, ok := validators.FormString(r, "income"); ok {
		income, err := validators.FormDecimal(r, "income")
		if err != nil {
			return input, err
		}
		input.Income = &income
	}
	if _, ok := validators.FormString(r, "expense"); ok {
		expense, err := validators.FormDecimal(r, "expense")
		if err != nil {
			return input, err
		}
		input.Expense = &expense
	}

	if _, ok := validators.FormString(r, "taxable"); ok {
		taxable, err := validators.FormBool(r, "taxable")
		if err != nil {
			return input, err
		}
		input.Taxable = taxable
	}

	if raw, ok := validators.FormString(r, "export_to"); ok && raw != "" {
		exportTo, err := enums.ParseExportTo(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid export_to")
		}
		input.ExportTo = &exportTo
	}

	return input, nil
}
