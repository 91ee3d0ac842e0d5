package validators

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidateStruct runs the shared validator over a decoded request struct.
func ValidateStruct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ParseForm parses form-encoded bodies, covering both urlencoded and
// multipart submissions from the mobile client.
func ParseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return nil
}

// FormString returns the trimmed form value and whether the field was
// present in the submission at all. Presence matters for partial updates.
func FormString(r *http.Request, key string) (string, bool) {
	if r.Form == nil {
		return "", false
	}
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}

// FormDecimal parses an amount field. Empty or absent values yield a
// null decimal so income and expense stay mutually optional.
func FormDecimal(r *http.Request, key string) (decimal.NullDecimal, error) {
	raw, ok := FormString(r, key)
	if !ok || raw == "" {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a decimal amount").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}, nil
}

// FormDate parses a YYYY-MM-DD form field.
func FormDate(r *http.Request, key string) (time.Time, bool, error) {
	raw, ok := FormString(r, key)
	if !ok || raw == "" {
		return time.Time{}, false, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a date formatted YYYY-MM-DD").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return value, true, nil
}

func FormBool(r *http.Request, key string) (*bool, error) {
	raw, ok := FormString(r, key)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, key+" must be a boolean").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return &value, nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}
