package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/netconsulting/balancesheet/api/responses"
	"github.com/netconsulting/balancesheet/api/validators"
	"github.com/netconsulting/balancesheet/internal/summary"
	"github.com/netconsulting/balancesheet/pkg/config"
	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
	"github.com/netconsulting/balancesheet/pkg/logger"
)

// totalResponse wraps one aggregate value. Decimal renders as a string
// so clients never see float rounding.
type totalResponse struct {
	Total decimal.Decimal `json:"total"`
}

// sumHandler adapts a no-argument aggregate to an HTTP handler.
func sumHandler(logg *logger.Logger, fn func(ctx context.Context) (decimal.Decimal, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fn == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "summary service unavailable"))
			return
		}

		total, err := fn(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totalResponse{Total: total})
	}
}

// SumExpense returns the current-month expense sum.
func SumExpense(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.MonthExpense)
}

// SumIncome returns the current-month income sum.
func SumIncome(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.MonthIncome)
}

// SumSavings returns current-month income minus expense.
func SumSavings(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.MonthSavings)
}

// SumFood returns the current-month food balance, expense minus income.
func SumFood(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.MonthFoodNet)
}

// SumAverageFoodPerDay returns year-to-date food spend per elapsed day.
func SumAverageFoodPerDay(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.AverageFoodPerDay)
}

// SumFoodYear returns the year-to-date food balance.
func SumFoodYear(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.YearFoodNet)
}

// SumIncomeYear returns the year-to-date salary income.
func SumIncomeYear(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return sumHandler(logg, nil)
	}
	return sumHandler(logg, svc.YearIncome)
}

// SumReservedPerDay spreads the remaining food reserve over the rest of
// the month. The reserve query parameter falls back to the configured
// default.
func SumReservedPerDay(svc summary.Service, cfg config.ReportConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "summary service unavailable"))
			return
		}

		reserve, err := validators.QueryDecimal(r, "reserve", cfg.FoodReserveDefault)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		total, err := svc.ReservedPerDayUntilMonthEnd(r.Context(), reserve)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totalResponse{Total: total})
	}
}

// SumFoodPerPerson returns one person's remaining monthly food budget.
// Both query parameters are mandatory.
func SumFoodPerPerson(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "summary service unavailable"))
			return
		}

		person, err := validators.RequireQueryString(r, "person")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := validators.RequireQueryString(r, "reserve")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reserve, err := decimal.NewFromString(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "reserve must be a decimal amount").
				WithDetails(map[string]any{"field": "reserve", "value": raw}))
			return
		}

		total, err := svc.PersonFoodBudget(r.Context(), person, reserve)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totalResponse{Total: total})
	}
}
