package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/accounting/journals"
	"github.com/meridian-erp/meridian-erp/internal/accounting/ledger"
	"github.com/meridian-erp/meridian-erp/internal/accounting/reports"
	"github.com/meridian-erp/meridian-erp/internal/auth"
	"github.com/meridian-erp/meridian-erp/internal/banking"
	"github.com/meridian-erp/meridian-erp/internal/hr/payrates"
	"github.com/meridian-erp/meridian-erp/internal/hr/sickdays"
	"github.com/meridian-erp/meridian-erp/internal/observability"
	"github.com/meridian-erp/meridian-erp/internal/sales/customers"
	"github.com/meridian-erp/meridian-erp/internal/warehouse"
	"github.com/meridian-erp/meridian-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AccountsHandler  *accounts.Handler
	JournalsHandler  *journals.Handler
	LedgerHandler    *ledger.Handler
	ReportsHandler   *reports.Handler
	BankingHandler   *banking.Handler
	WarehouseHandler *warehouse.Handler
	PayRatesHandler  *payrates.Handler
	SickDaysHandler  *sickdays.Handler
	CustomersHandler *customers.Handler
	JobsHandler      *jobs.HTTPHandler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything except /healthz and
// /metrics sits behind the auth token middleware.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(params.Logger, params.Config.JWTSecret))

		r.Route("/accounting", func(r chi.Router) {
			params.AccountsHandler.MountRoutes(r)
			params.JournalsHandler.MountRoutes(r)
			params.LedgerHandler.MountRoutes(r)
			params.ReportsHandler.MountRoutes(r)
		})
		r.Route("/banks", params.BankingHandler.MountRoutes)
		r.Route("/warehouses", params.WarehouseHandler.MountRoutes)
		r.Route("/payRate", params.PayRatesHandler.MountRoutes)
		r.Route("/sickDays", params.SickDaysHandler.MountRoutes)
		r.Route("/customers", params.CustomersHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/admin/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
