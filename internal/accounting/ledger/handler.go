package ledger

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes read-only ledger endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ledger", h.List)
	r.Get("/ledger/balance", h.Balance)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := Filter{Limit: page.Limit, Offset: page.Offset()}
	if acc := r.URL.Query().Get("accountId"); acc != "" {
		id, err := strconv.ParseInt(acc, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid accountId")
			return
		}
		filter.AccountID = &id
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid from date")
			return
		}
		filter.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid to date")
			return
		}
		filter.To = &t
	}

	rows, total, err := h.service.List(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list ledger", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if rows == nil {
		rows = []Row{}
	}
	httpx.Paginated(w, rows, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())

	accountID, err := strconv.ParseInt(r.URL.Query().Get("accountId"), 10, 64)
	if err != nil || accountID <= 0 {
		httpx.Fail(w, http.StatusBadRequest, "accountId is required")
		return
	}
	asOf := time.Now()
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid asOf date")
			return
		}
		asOf = parsed
	}

	balance, err := h.service.Balance(r.Context(), companyID, accountID, asOf)
	if err != nil {
		h.logger.Error("ledger balance", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.OK(w, balance)
}
