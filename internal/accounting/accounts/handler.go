package accounts

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes the chart-of-accounts endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes attaches account routes to the router group.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts", h.List)
	r.Post("/accounts", h.Create)
	r.Get("/accounts/{id}", h.Get)
	r.Put("/accounts/{id}", h.Update)
	r.Delete("/accounts/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := ListFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if typ := r.URL.Query().Get("accountType"); typ != "" {
		t := AccountType(typ)
		filter.Type = &t
	}
	if active := r.URL.Query().Get("active"); active != "" {
		val := active == "true"
		filter.IsActive = &val
	}

	accounts, total, err := h.service.List(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if accounts == nil {
		accounts = []Account{}
	}
	httpx.Paginated(w, accounts, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	companyID := internalShared.CompanyID(r.Context())
	account, err := h.service.Create(r.Context(), companyID, req)
	if err != nil {
		h.respondDomainError(w, "create account", err)
		return
	}
	httpx.Created(w, account)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid account id")
		return
	}
	account, err := h.service.Get(r.Context(), internalShared.CompanyID(r.Context()), id)
	if err != nil {
		h.respondDomainError(w, "get account", err)
		return
	}
	httpx.OK(w, account)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid account id")
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

	account, err := h.service.Update(r.Context(), internalShared.CompanyID(r.Context()), id, req)
	if err != nil {
		h.respondDomainError(w, "update account", err)
		return
	}
	httpx.OK(w, account)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := h.service.Delete(r.Context(), internalShared.CompanyID(r.Context()), id); err != nil {
		h.respondDomainError(w, "delete account", err)
		return
	}
	httpx.Message(w, http.StatusOK, "account deleted")
}

func (h *Handler) respondDomainError(w http.ResponseWriter, op string, err error) {
	if httpx.StatusOf(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
