package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/netconsulting/balancesheet/api/controllers"
	"github.com/netconsulting/balancesheet/api/middleware"
	"github.com/netconsulting/balancesheet/internal/entries"
	"github.com/netconsulting/balancesheet/internal/summary"
	"github.com/netconsulting/balancesheet/pkg/config"
	"github.com/netconsulting/balancesheet/pkg/logger"
	"github.com/netconsulting/balancesheet/pkg/metrics"
)

// NewRouter assembles the HTTP surface: the ledger endpoints under
// /incomeexpense plus health and metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pinger controllers.Pinger,
	entriesService entries.Service,
	summaryService summary.Service,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pinger, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/incomeexpense", func(r chi.Router) {
		r.Get("/all", controllers.EntriesCurrentMonth(entriesService, logg))
		r.Get("/all_entries", controllers.EntriesAll(entriesService, logg))
		r.Post("/add", controllers.EntryAdd(entriesService, logg))
		r.Put("/put/{id}", controllers.EntryUpdate(entriesService, logg))

		r.Get("/sum_expense", controllers.SumExpense(summaryService, logg))
		r.Get("/sum_income", controllers.SumIncome(summaryService, logg))
		r.Get("/sum_savings", controllers.SumSavings(summaryService, logg))
		r.Get("/sum_food", controllers.SumFood(summaryService, logg))
		r.Get("/sum_average_spending_day_of_month", controllers.SumAverageFoodPerDay(summaryService, logg))
		r.Get("/sum_reserved_per_day_until_end_of_month", controllers.SumReservedPerDay(summaryService, cfg.Report, logg))
		r.Get("/sum_spending_food_since_beginning_of_year", controllers.SumFoodYear(summaryService, logg))
		r.Get("/sum_income_year", controllers.SumIncomeYear(summaryService, logg))
		r.Get("/sum_spending_food_per_person_per_month", controllers.SumFoodPerPerson(summaryService, logg))

		// Static routes above always win over the id wildcard.
		r.Get("/{id}", controllers.EntryByID(entriesService, logg))
	})

	return r
}
