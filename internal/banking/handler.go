package banking

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// maxStatementSize caps uploaded statement files at 8 MiB.
const maxStatementSize = 8 << 20

// Handler exposes the banking endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes attaches banking routes. Mounted under /banks by the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.ListAccounts)
		r.Post("/", h.CreateAccount)
		r.Get("/{id}", h.GetAccount)
		r.Put("/{id}", h.UpdateAccount)
	})
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.ListTransactions)
		r.Post("/", h.CreateTransaction)
		r.Post("/import", h.Import)
		r.Post("/reconcile", h.Reconcile)
	})
	r.Post("/transfers", h.Transfer)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := AccountFilter{Limit: page.Limit, Offset: page.Offset()}
	if active := r.URL.Query().Get("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	accounts, total, err := h.service.ListAccounts(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list bank accounts", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if accounts == nil {
		accounts = []BankAccount{}
	}
	httpx.Paginated(w, accounts, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.CreateAccount(r.Context(), internalShared.CompanyID(r.Context()), req)
	if err != nil {
		h.respondDomainError(w, "create bank account", err)
		return
	}
	httpx.Created(w, account)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	account, err := h.service.GetAccount(r.Context(), internalShared.CompanyID(r.Context()), id)
	if err != nil {
		h.respondDomainError(w, "get bank account", err)
		return
	}
	httpx.OK(w, account)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), internalShared.CompanyID(r.Context()), id, req)
	if err != nil {
		h.respondDomainError(w, "update bank account", err)
		return
	}
	httpx.OK(w, account)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := TransactionFilter{Limit: page.Limit, Offset: page.Offset()}
	if raw := r.URL.Query().Get("bankAccountId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid bankAccountId")
			return
		}
		filter.BankAccountID = &id
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := TransactionType(raw)
		filter.Type = &t
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := ReconciliationStatus(raw)
		filter.Status = &st
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid from date")
			return
		}
		filter.From = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid to date")
			return
		}
		filter.To = &t
	}

	txns, total, err := h.service.ListTransactions(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list bank transactions", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if txns == nil {
		txns = []BankTransaction{}
	}
	httpx.Paginated(w, txns, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, _ := internalShared.IdentityFromContext(r.Context())
	txn, err := h.service.CreateTransaction(r.Context(), identity.CompanyID, identity.EmployeeID, req)
	if err != nil {
		h.respondDomainError(w, "create bank transaction", err)
		return
	}
	httpx.Created(w, txn)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxStatementSize); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	bankAccountID, err := strconv.ParseInt(r.FormValue("bankAccountId"), 10, 64)
	if err != nil || bankAccountID <= 0 {
		httpx.Fail(w, http.StatusBadRequest, "invalid bankAccountId")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "statement file is required")
		return
	}
	defer file.Close()

	identity, _ := internalShared.IdentityFromContext(r.Context())
	result, err := h.service.Import(r.Context(), identity.CompanyID, identity.EmployeeID, bankAccountID, file)
	if err != nil {
		h.respondDomainError(w, "import bank statement", err)
		return
	}
	httpx.OK(w, result)
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, _ := internalShared.IdentityFromContext(r.Context())
	txns, err := h.service.Reconcile(r.Context(), identity.CompanyID, identity.EmployeeID, req)
	if err != nil {
		h.respondDomainError(w, "reconcile bank transactions", err)
		return
	}
	httpx.OK(w, txns)
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, _ := internalShared.IdentityFromContext(r.Context())
	result, err := h.service.Transfer(r.Context(), identity.CompanyID, identity.EmployeeID, req)
	if err != nil {
		h.respondDomainError(w, "bank transfer", err)
		return
	}
	httpx.Created(w, result)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondDomainError(w http.ResponseWriter, op string, err error) {
	if httpx.StatusOf(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
