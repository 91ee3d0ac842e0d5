package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/netconsulting/balancesheet/internal/entries"
	"github.com/netconsulting/balancesheet/pkg/db/models"
	"github.com/netconsulting/balancesheet/pkg/enums"
	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
)

type stubEntriesService struct {
	entry    *models.LedgerEntry
	rows     []models.LedgerEntry
	err      error
	addInput entries.AddEntryInput
	updInput entries.UpdateEntryInput
	updID    int64
}

func (s *stubEntriesService) AddEntry(ctx context.Context, input entries.AddEntryInput) (*models.LedgerEntry, error) {
	s.addInput = input
	return s.entry, s.err
}

func (s *stubEntriesService) UpdateEntry(ctx context.Context, id int64, input entries.UpdateEntryInput) (*models.LedgerEntry, error) {
	s.updID = id
	s.updInput = input
	return s.entry, s.err
}

func (s *stubEntriesService) GetEntry(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	return s.entry, s.err
}

func (s *stubEntriesService) ListCurrentMonth(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.rows, s.err
}

func (s *stubEntriesService) ListAll(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.rows, s.err
}

func sampleEntry() *models.LedgerEntry {
	expense := decimal.NullDecimal{Decimal: decimal.RequireFromString("12.50"), Valid: true}
	return &models.LedgerEntry{
		ID:        7,
		OrderDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		Who:       "Julia",
		Position:  "essen",
		Expense:   expense,
		ExportTo:  enums.ExportToAuto,
	}
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, payload any) {
	t.Helper()
	envelope := struct {
		Message       string `json:"message"`
		IncomeExpense any    `json:"incomeexpense"`
		Error         string `json:"error"`
		Duplicate     bool   `json:"duplicate"`
	}{IncomeExpense: payload}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Message != "success" {
		t.Fatalf("expected success envelope, got %q (error %q)", envelope.Message, envelope.Error)
	}
}

func TestEntriesCurrentMonth(t *testing.T) {
	svc := &stubEntriesService{rows: []models.LedgerEntry{*sampleEntry()}}
	handler := EntriesCurrentMonth(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/incomeexpense/all", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var rows []entryResponse
	decodeEnvelope(t, rec, &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
	if rows[0].OrderDate != "2025-03-05" {
		t.Fatalf("expected plain date, got %q", rows[0].OrderDate)
	}
}

func TestEntryByIDNotFound(t *testing.T) {
	svc := &stubEntriesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")}
	handler := EntryByID(svc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/incomeexpense/99", nil), "id", "99")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestEntryByIDRejectsBadID(t *testing.T) {
	handler := EntryByID(&stubEntriesService{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/incomeexpense/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestEntryAddSuccess(t *testing.T) {
	svc := &stubEntriesService{entry: sampleEntry()}
	handler := EntryAdd(svc, nil)

	form := url.Values{}
	form.Set("orderdate", "2025-03-05")
	form.Set("who", "Julia")
	form.Set("position", "essen")
	form.Set("expense", "12.50")
	form.Set("comment", "Wocheneinkauf")
	form.Set("transaction_id", "tx-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formRequest(http.MethodPost, "/incomeexpense/add", form))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.addInput.TransactionID != "tx-123" {
		t.Fatalf("transaction id not forwarded: %q", svc.addInput.TransactionID)
	}
	if svc.addInput.ExportTo != enums.ExportToAuto {
		t.Fatalf("expected auto export_to default, got %q", svc.addInput.ExportTo)
	}
	if svc.addInput.Comment == nil || *svc.addInput.Comment != "Wocheneinkauf" {
		t.Fatalf("comment not forwarded")
	}
}

func TestEntryAddMissingTransactionID(t *testing.T) {
	handler := EntryAdd(&stubEntriesService{}, nil)

	form := url.Values{}
	form.Set("orderdate", "2025-03-05")
	form.Set("who", "Julia")
	form.Set("position", "essen")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formRequest(http.MethodPost, "/incomeexpense/add", form))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestEntryAddDuplicateSetsFlag(t *testing.T) {
	svc := &stubEntriesService{err: pkgerrors.New(pkgerrors.CodeIdempotency, "transaction already processed")}
	handler := EntryAdd(svc, nil)

	form := url.Values{}
	form.Set("orderdate", "2025-03-05")
	form.Set("who", "Julia")
	form.Set("position", "essen")
	form.Set("transaction_id", "tx-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formRequest(http.MethodPost, "/incomeexpense/add", form))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}

	var envelope struct {
		Message   string `json:"message"`
		Duplicate bool   `json:"duplicate"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Duplicate {
		t.Fatal("expected duplicate flag on idempotency conflict")
	}
	if envelope.Message != "transaction already processed" {
		t.Fatalf("expected duplicate message in envelope, got %q", envelope.Message)
	}
}

func TestEntryAddReportsMissingFields(t *testing.T) {
	handler := EntryAdd(&stubEntriesService{}, nil)

	form := url.Values{}
	form.Set("orderdate", "2025-03-05")
	form.Set("position", "essen")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formRequest(http.MethodPost, "/incomeexpense/add", form))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	var envelope struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Details["who"] != "is required" {
		t.Fatalf("expected who in details, got %v", envelope.Details)
	}
	if envelope.Details["transaction_id"] != "is required" {
		t.Fatalf("expected transaction_id in details, got %v", envelope.Details)
	}
	if _, ok := envelope.Details["orderdate"]; ok {
		t.Fatalf("orderdate was submitted, details = %v", envelope.Details)
	}
}

func TestEntryUpdateForwardsOnlySubmittedFields(t *testing.T) {
	svc := &stubEntriesService{entry: sampleEntry()}
	handler := EntryUpdate(svc, nil)

	form := url.Values{}
	form.Set("expense", "20.00")

	req := withURLParam(formRequest(http.MethodPut, "/incomeexpense/put/7", form), "id", "7")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updID != 7 {
		t.Fatalf("expected id 7 got %d", svc.updID)
	}
	if svc.updInput.Expense == nil || !svc.updInput.Expense.Decimal.Equal(decimal.RequireFromString("20.00")) {
		t.Fatal("expense not forwarded")
	}
	if svc.updInput.Who != nil || svc.updInput.Position != nil || svc.updInput.OrderDate != nil {
		t.Fatal("absent fields must stay nil")
	}
}

func TestEntryAddRejectsBadExportTo(t *testing.T) {
	handler := EntryAdd(&stubEntriesService{}, nil)

	form := url.Values{}
	form.Set("orderdate", "2025-03-05")
	form.Set("who", "Julia")
	form.Set("position", "essen")
	form.Set("transaction_id", "tx-123")
	form.Set("export_to", "nowhere")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formRequest(http.MethodPost, "/incomeexpense/add", form))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
