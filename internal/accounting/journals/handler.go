package journals

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

// Handler exposes journal entry endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes attaches journal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/journal-entries", h.List)
	r.Post("/journal-entries", h.Create)
	r.Get("/journal-entries/{id}", h.Get)
	r.Put("/journal-entries/{id}", h.Update)
	r.Post("/journal-entries/{id}/post", h.Post)
	r.Post("/journal-entries/{id}/reverse", h.Reverse)
	r.Post("/journal-entries/{id}/cancel", h.Cancel)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := ListFilter{Limit: page.Limit, Offset: page.Offset()}
	if status := r.URL.Query().Get("status"); status != "" {
		st := JournalStatus(status)
		filter.Status = &st
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

	entries, total, err := h.service.List(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list journals", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []JournalEntry{}
	}
	httpx.Paginated(w, entries, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	companyID := internalShared.CompanyID(r.Context())
	entry, err := h.service.Create(r.Context(), companyID, req)
	if err != nil {
		h.respondDomainError(w, "create journal", err)
		return
	}
	httpx.Created(w, entry)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	entry, err := h.service.Get(r.Context(), internalShared.CompanyID(r.Context()), id)
	if err != nil {
		h.respondDomainError(w, "get journal", err)
		return
	}
	httpx.OK(w, entry)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	var req UpdateJournalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.Update(r.Context(), internalShared.CompanyID(r.Context()), id, req)
	if err != nil {
		h.respondDomainError(w, "update journal", err)
		return
	}
	httpx.OK(w, entry)
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	identity, _ := internalShared.IdentityFromContext(r.Context())
	entry, err := h.service.Post(r.Context(), identity.CompanyID, id, identity.EmployeeID)
	if err != nil {
		h.respondDomainError(w, "post journal", err)
		return
	}
	httpx.OK(w, entry)
}

func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	var req ReverseJournalRequest
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	identity, _ := internalShared.IdentityFromContext(r.Context())
	reversal, err := h.service.Reverse(r.Context(), identity.CompanyID, id, identity.EmployeeID, req.Memo)
	if err != nil {
		h.respondDomainError(w, "reverse journal", err)
		return
	}
	httpx.OK(w, reversal)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	identity, _ := internalShared.IdentityFromContext(r.Context())
	entry, err := h.service.Cancel(r.Context(), identity.CompanyID, id, identity.EmployeeID)
	if err != nil {
		h.respondDomainError(w, "cancel journal", err)
		return
	}
	httpx.OK(w, entry)
}

func (h *Handler) entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid journal entry id")
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
