package validators

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
)

// RequireQueryString returns the trimmed query value or a validation error.
func RequireQueryString(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, key+" query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}

// QueryDecimal parses an optional decimal query parameter, falling back
// to the provided default when absent.
func QueryDecimal(r *http.Request, key string, defaultVal decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a decimal amount").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return value, nil
}
