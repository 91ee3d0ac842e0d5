package summary

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/netconsulting/balancesheet/pkg/errors"
)

type fakeSummaryRepo struct {
	income      decimal.Decimal
	expense     decimal.Decimal
	foodExpense decimal.Decimal
	foodNet     decimal.Decimal

	lastFrom time.Time
	lastTo   time.Time
	lastWho  string
}

func (f *fakeSummaryRepo) SumIncome(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	f.lastFrom, f.lastTo = from, to
	return f.income, nil
}

func (f *fakeSummaryRepo) SumExpense(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	f.lastFrom, f.lastTo = from, to
	return f.expense, nil
}

func (f *fakeSummaryRepo) SumFoodExpense(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	f.lastFrom, f.lastTo = from, to
	return f.foodExpense, nil
}

func (f *fakeSummaryRepo) SumFoodNet(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	f.lastFrom, f.lastTo = from, to
	return f.foodNet, nil
}

func (f *fakeSummaryRepo) SumPositionIncome(ctx context.Context, position string, from, to time.Time) (decimal.Decimal, error) {
	f.lastFrom, f.lastTo = from, to
	return f.income, nil
}

func (f *fakeSummaryRepo) SumFoodNetForPerson(ctx context.Context, who string, from, to time.Time) (decimal.Decimal, error) {
	f.lastFrom, f.lastTo = from, to
	f.lastWho = who
	return f.foodNet, nil
}

func newTestService(t *testing.T, repo Repository, now time.Time) Service {
	t.Helper()

	svc, err := NewService(repo)
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestMonthSavings(t *testing.T) {
	repo := &fakeSummaryRepo{
		income:  decimal.RequireFromString("3000.00"),
		expense: decimal.RequireFromString("1234.56"),
	}
	svc := newTestService(t, repo, time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC))

	savings, err := svc.MonthSavings(context.Background())
	require.NoError(t, err)
	assert.True(t, savings.Equal(decimal.RequireFromString("1765.44")), savings.String())

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), repo.lastTo)
}

func TestAverageFoodPerDay(t *testing.T) {
	repo := &fakeSummaryRepo{foodExpense: decimal.RequireFromString("740.00")}
	// Feb 5 is day 36 of the year.
	svc := newTestService(t, repo, time.Date(2025, time.February, 5, 8, 0, 0, 0, time.UTC))

	avg, err := svc.AverageFoodPerDay(context.Background())
	require.NoError(t, err)
	assert.True(t, avg.Equal(decimal.RequireFromString("20.56")), avg.String())

	// Year start through end of today.
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2025, time.February, 6, 0, 0, 0, 0, time.UTC), repo.lastTo)
}

func TestReservedPerDayUntilMonthEnd(t *testing.T) {
	repo := &fakeSummaryRepo{foodNet: decimal.RequireFromString("100.00")}
	// March 22: 10 days remain including today.
	svc := newTestService(t, repo, time.Date(2025, time.March, 22, 18, 0, 0, 0, time.UTC))

	perDay, err := svc.ReservedPerDayUntilMonthEnd(context.Background(), decimal.NewFromInt(350))
	require.NoError(t, err)
	assert.True(t, perDay.Equal(decimal.NewFromInt(25)), perDay.String())
}

func TestReservedPerDayFirstOfMonth(t *testing.T) {
	repo := &fakeSummaryRepo{foodNet: decimal.Zero}
	svc := newTestService(t, repo, time.Date(2025, time.March, 1, 0, 30, 0, 0, time.UTC))

	perDay, err := svc.ReservedPerDayUntilMonthEnd(context.Background(), decimal.NewFromInt(310))
	require.NoError(t, err)
	assert.True(t, perDay.Equal(decimal.NewFromInt(10)), perDay.String())
}

func TestReservedPerDayLastOfMonth(t *testing.T) {
	repo := &fakeSummaryRepo{foodNet: decimal.RequireFromString("300.00")}
	svc := newTestService(t, repo, time.Date(2025, time.March, 31, 23, 0, 0, 0, time.UTC))

	perDay, err := svc.ReservedPerDayUntilMonthEnd(context.Background(), decimal.NewFromInt(350))
	require.NoError(t, err)
	assert.True(t, perDay.Equal(decimal.NewFromInt(50)), perDay.String())
}

func TestPersonFoodBudget(t *testing.T) {
	repo := &fakeSummaryRepo{foodNet: decimal.RequireFromString("120.50")}
	svc := newTestService(t, repo, time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC))

	remaining, err := svc.PersonFoodBudget(context.Background(), "Julia", decimal.NewFromInt(350))
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.RequireFromString("229.50")), remaining.String())
	assert.Equal(t, "Julia", repo.lastWho)
}

func TestPersonFoodBudgetRequiresPerson(t *testing.T) {
	svc := newTestService(t, &fakeSummaryRepo{}, time.Now())

	_, err := svc.PersonFoodBudget(context.Background(), "", decimal.NewFromInt(350))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestYearRanges(t *testing.T) {
	repo := &fakeSummaryRepo{foodNet: decimal.RequireFromString("912.00")}
	svc := newTestService(t, repo, time.Date(2025, time.August, 31, 12, 0, 0, 0, time.UTC))

	_, err := svc.YearFoodNet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), repo.lastTo)
}
