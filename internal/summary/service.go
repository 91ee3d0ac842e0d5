package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
)

const incomePosition = "einkommen"

// Service answers the month-to-date and year-to-date scalar aggregates
// behind the sum_* endpoints. "Now" comes from an injectable clock so
// the month-boundary arithmetic is testable.
type Service interface {
	MonthExpense(ctx context.Context) (decimal.Decimal, error)
	MonthIncome(ctx context.Context) (decimal.Decimal, error)
	MonthSavings(ctx context.Context) (decimal.Decimal, error)
	MonthFoodNet(ctx context.Context) (decimal.Decimal, error)
	AverageFoodPerDay(ctx context.Context) (decimal.Decimal, error)
	ReservedPerDayUntilMonthEnd(ctx context.Context, reserve decimal.Decimal) (decimal.Decimal, error)
	YearFoodNet(ctx context.Context) (decimal.Decimal, error)
	YearIncome(ctx context.Context) (decimal.Decimal, error)
	PersonFoodBudget(ctx context.Context, person string, reserve decimal.Decimal) (decimal.Decimal, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the summary service with its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("summary repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) MonthExpense(ctx context.Context) (decimal.Decimal, error) {
	from, to := monthRange(s.now())
	return s.repo.SumExpense(ctx, from, to)
}

func (s *service) MonthIncome(ctx context.Context) (decimal.Decimal, error) {
	from, to := monthRange(s.now())
	return s.repo.SumIncome(ctx, from, to)
}

func (s *service) MonthSavings(ctx context.Context) (decimal.Decimal, error) {
	from, to := monthRange(s.now())
	income, err := s.repo.SumIncome(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.repo.SumExpense(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return income.Sub(expense), nil
}

func (s *service) MonthFoodNet(ctx context.Context) (decimal.Decimal, error) {
	from, to := monthRange(s.now())
	return s.repo.SumFoodNet(ctx, from, to)
}

// AverageFoodPerDay divides the year-to-date food spend by the number
// of days elapsed this year, today included.
func (s *service) AverageFoodPerDay(ctx context.Context) (decimal.Decimal, error) {
	now := s.now()
	from := yearStart(now)
	to := dayStart(now).AddDate(0, 0, 1)

	spend, err := s.repo.SumFoodExpense(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	days := decimal.NewFromInt(int64(now.YearDay()))
	return spend.DivRound(days, 2), nil
}

// ReservedPerDayUntilMonthEnd spreads the remaining food reserve over
// the rest of the month. The divisor counts today through the last day
// of the month and never drops below one, so the first of the month is
// safe.
func (s *service) ReservedPerDayUntilMonthEnd(ctx context.Context, reserve decimal.Decimal) (decimal.Decimal, error) {
	now := s.now()
	from := yearStart(now)
	to := dayStart(now).AddDate(0, 0, 1)

	net, err := s.repo.SumFoodNet(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	remaining := daysInMonth(now) - now.Day() + 1
	if remaining < 1 {
		remaining = 1
	}
	return reserve.Sub(net).DivRound(decimal.NewFromInt(int64(remaining)), 2), nil
}

func (s *service) YearFoodNet(ctx context.Context) (decimal.Decimal, error) {
	from, to := yearRange(s.now())
	return s.repo.SumFoodNet(ctx, from, to)
}

func (s *service) YearIncome(ctx context.Context) (decimal.Decimal, error) {
	from, to := yearRange(s.now())
	return s.repo.SumPositionIncome(ctx, incomePosition, from, to)
}

func (s *service) PersonFoodBudget(ctx context.Context, person string, reserve decimal.Decimal) (decimal.Decimal, error) {
	if person == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "person is required")
	}
	from, to := monthRange(s.now())
	net, err := s.repo.SumFoodNetForPerson(ctx, person, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return reserve.Sub(net), nil
}

func monthRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

func yearRange(now time.Time) (time.Time, time.Time) {
	from := yearStart(now)
	return from, from.AddDate(1, 0, 0)
}

func yearStart(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

func dayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func daysInMonth(now time.Time) int {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, 1, 0).AddDate(0, 0, -1).Day()
}
