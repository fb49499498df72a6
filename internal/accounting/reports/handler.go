package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes the financial statement endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches statement routes under /reports.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/trial-balance", h.TrialBalance)
		r.Get("/profit-loss", h.ProfitLoss)
		r.Get("/balance-sheet", h.BalanceSheet)
		r.Get("/cash-flow", h.CashFlow)
	})
}

func parseDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid "+name+" date")
		return nil, false
	}
	return &t, true
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseDate(w, r, "to")
	if !ok {
		return
	}
	tb, err := h.service.TrialBalance(r.Context(), shared.CompanyID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("trial balance", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.OK(w, tb)
}

func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseDate(w, r, "to")
	if !ok {
		return
	}
	pl, err := h.service.ProfitLoss(r.Context(), shared.CompanyID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("profit loss", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.OK(w, pl)
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := parseDate(w, r, "asOf")
	if !ok {
		return
	}
	bs, err := h.service.BalanceSheet(r.Context(), shared.CompanyID(r.Context()), asOf)
	if err != nil {
		h.logger.Error("balance sheet", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.OK(w, bs)
}

func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	fromPtr, ok := parseDate(w, r, "from")
	if !ok {
		return
	}
	toPtr, ok := parseDate(w, r, "to")
	if !ok {
		return
	}
	// default to the trailing twelve months
	to := time.Now()
	if toPtr != nil {
		to = *toPtr
	}
	from := to.AddDate(-1, 0, 0)
	if fromPtr != nil {
		from = *fromPtr
	}

	cf, err := h.service.CashFlow(r.Context(), shared.CompanyID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("cash flow", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.OK(w, cf)
}
